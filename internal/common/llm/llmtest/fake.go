// Package llmtest provides a scripted llm.Generator for handler tests.
package llmtest

import (
	"context"
	"sync"

	"scriptgen-workers/internal/common/llm"
)

// Reply is one scripted answer.
type Reply struct {
	Text       string
	SourceURLs []string
	Err        error
}

// Fake returns its replies in order, repeating the last one once exhausted,
// and records every request.
type Fake struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.Request
}

func New(replies ...Reply) *Fake {
	return &Fake{replies: replies}
}

// Text is shorthand for a fake that always answers text.
func Text(text string) *Fake {
	return New(Reply{Text: text})
}

func (f *Fake) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, llm.ErrLLMTimeout
	}
	if len(f.replies) == 0 {
		return &llm.Response{SourceURLs: []string{}}, nil
	}

	i := len(f.requests) - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	r := f.replies[i]
	if r.Err != nil {
		return nil, r.Err
	}
	urls := r.SourceURLs
	if urls == nil {
		urls = []string{}
	}
	return &llm.Response{Text: r.Text, SourceURLs: urls}, nil
}

func (f *Fake) Requests() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}

// LastRequest returns the most recent request, or the zero value.
func (f *Fake) LastRequest() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return llm.Request{}
	}
	return f.requests[len(f.requests)-1]
}
