package github

import (
	"context"
	"iter"
	"time"
)

// Pager walks the listing pages of one account. It is lazy: nothing is
// fetched until iteration starts. It is finite: iteration ends after the
// first empty page, the first page without a next relation, or the first
// failure. It is single-use: a second iteration yields nothing.
type Pager struct {
	client  *Client
	kind    AccountType
	account string
	done    bool
}

// All yields each non-empty page. A failure is yielded once, with the page
// number that failed, and ends the sequence. Between pages the pager
// sleeps the client's courtesy delay; cancellation during the pause is
// yielded as the context error.
func (p *Pager) All(ctx context.Context) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		if p.done {
			return
		}
		p.done = true

		for number := 1; ; number++ {
			page, err := p.client.FetchPage(ctx, p.kind, p.account, number)
			if err != nil {
				yield(page, err)
				return
			}
			if len(page.Repos) == 0 {
				return
			}
			if !yield(page, nil) || !page.HasNext {
				return
			}
			if err := sleep(ctx, p.client.delay); err != nil {
				yield(Page{Number: number + 1}, err)
				return
			}
		}
	}
}

// Used reports whether the pager has already been iterated.
func (p *Pager) Used() bool {
	return p.done
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
