package projects

import "fmt"

// Normalize converts one raw record into a Project. A record without a
// usable id or name is skipped; a record whose fields cannot be
// interpreted is fatal for that record only. The input is not modified.
func Normalize(raw map[string]any, source string) Result[Project] {
	id, name, reason := identity(raw)
	if reason != "" {
		return skipped[Project](source, reason)
	}

	p := Project{
		ID:      id,
		Name:    name,
		Slug:    Slugify(id),
		Derived: Placeholder(),
	}

	var err error
	lists := []struct {
		key string
		dst *[]string
	}{
		{"implementation", &p.Implementation},
		{"artifact", &p.Artifact},
		{"target", &p.Target},
		{"tags", &p.Tags},
	}
	for _, l := range lists {
		if *l.dst, err = listField(raw, l.key); err != nil {
			return fatal[Project](source, err)
		}
	}

	singles := []struct {
		key string
		dst **string
	}{
		{"type", &p.Type},
		{"maturity", &p.Maturity},
		{"status", &p.Status},
	}
	for _, s := range singles {
		if *s.dst, err = singleField(raw, s.key); err != nil {
			return fatal[Project](source, err)
		}
	}

	if p.Repos, err = reposField(raw); err != nil {
		return fatal[Project](source, err)
	}
	if p.Links, err = linksField(raw); err != nil {
		return fatal[Project](source, err)
	}
	if p.Notes, err = notesField(raw); err != nil {
		return fatal[Project](source, err)
	}
	return ok(source, p)
}

// NormalizePending converts one raw record into the reduced Pending shape.
func NormalizePending(raw map[string]any, source string) Result[Pending] {
	id, name, reason := identity(raw)
	if reason != "" {
		return skipped[Pending](source, reason)
	}

	p := Pending{ID: id, Name: name}
	var err error
	if p.Notes, err = notesField(raw); err != nil {
		return fatal[Pending](source, err)
	}
	if p.Repos, err = reposField(raw); err != nil {
		return fatal[Pending](source, err)
	}
	return ok(source, p)
}

func identity(raw map[string]any) (id, name, reason string) {
	id, _ = scalarString(raw["id"])
	name, _ = scalarString(raw["name"])
	switch {
	case id == "" && name == "":
		return "", "", "missing id and name"
	case id == "":
		return "", "", "missing id"
	case name == "":
		return "", "", "missing name"
	}
	return id, name, ""
}

func listField(raw map[string]any, key string) ([]string, error) {
	v, err := ParseScalarOrList(raw[key])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return v.List(), nil
}

func singleField(raw map[string]any, key string) (*string, error) {
	v, err := ParseScalarOrList(raw[key])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	switch v.Kind {
	case Absent:
		return nil, nil
	case Single:
		s, _ := v.Scalar()
		return &s, nil
	default:
		return nil, fmt.Errorf("%s: expected a single value, got a list", key)
	}
}

func notesField(raw map[string]any) (string, error) {
	v, present := raw["notes"]
	if !present || v == nil {
		return "", nil
	}
	s, ok := scalarString(v)
	if !ok {
		return "", fmt.Errorf("notes: expected text, got %T", v)
	}
	return s, nil
}

func reposField(raw map[string]any) ([]Repo, error) {
	v := raw["repos"]
	if v == nil {
		return []Repo{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("repos: expected a list, got %T", v)
	}
	repos := make([]Repo, 0, len(list))
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("repos[%d]: expected a mapping, got %T", i, item)
		}
		host, _ := scalarString(entry["host"])
		url, _ := scalarString(entry["url"])
		repos = append(repos, Repo{Host: host, URL: url})
	}
	return repos, nil
}

func linksField(raw map[string]any) (map[string]string, error) {
	v := raw["links"]
	if v == nil {
		return map[string]string{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("links: expected a mapping, got %T", v)
	}
	links := make(map[string]string, len(m))
	for name, target := range m {
		if target == nil {
			links[name] = ""
			continue
		}
		s, ok := scalarString(target)
		if !ok {
			return nil, fmt.Errorf("links.%s: expected a URI, got %T", name, target)
		}
		links[name] = s
	}
	return links, nil
}
