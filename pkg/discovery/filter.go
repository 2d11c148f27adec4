package discovery

import (
	"strings"

	"github.com/CameronBrooks11/projects-registry/internal/sources/github"
)

// Reason explains why a repository was not proposed.
type Reason string

// Skip reasons, in the order the checks run.
const (
	ReasonFork          Reason = "fork"
	ReasonArchived      Reason = "archived"
	ReasonPrivate       Reason = "private"
	ReasonBlacklisted   Reason = "blacklisted"
	ReasonKnownURL      Reason = "known_url"
	ReasonPendingExists Reason = "pending_exists"
)

// Filter applies the per-source rules to repo. It returns the first
// matching skip reason, or false when the repository may be proposed.
// Private repositories are never proposed, whatever the settings say.
func Filter(repo github.Repository, s Settings) (Reason, bool) {
	switch {
	case repo.Fork && !s.IncludeForks:
		return ReasonFork, true
	case repo.Archived && !s.IncludeArchived:
		return ReasonArchived, true
	case repo.Private:
		return ReasonPrivate, true
	case blacklisted(repo, s.Blacklist):
		return ReasonBlacklisted, true
	}
	return "", false
}

func blacklisted(repo github.Repository, blacklist map[string]struct{}) bool {
	if len(blacklist) == 0 {
		return false
	}
	if _, ok := blacklist[strings.ToLower(repo.Name)]; ok {
		return true
	}
	_, ok := blacklist[strings.ToLower(repo.HTMLURL)]
	return ok
}
