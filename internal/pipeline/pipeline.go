// Package pipeline drives a whole-document translation: split once, then
// translate chunk by chunk in document order, yielding each result as it
// completes.
package pipeline

import (
	"context"
	"fmt"
	"iter"

	"github.com/vkozyrev/gemmatran/internal"
	"github.com/vkozyrev/gemmatran/internal/config"
	"github.com/vkozyrev/gemmatran/internal/prompt"
	"github.com/vkozyrev/gemmatran/internal/splitter"
	"github.com/vkozyrev/gemmatran/internal/store"
	"github.com/vkozyrev/gemmatran/internal/translator"
)

// Result is one completed chunk translation. Index is zero-based; Total
// is the chunk count of the whole document.
type Result struct {
	Index int
	Total int
	Text  string
}

// Pipeline owns the settings, splitter, and translator for one run.
type Pipeline struct {
	settings    *config.Settings
	source      internal.Language
	target      internal.Language
	split       *splitter.Splitter
	trans       *translator.Translator
	checkpoints *store.Checkpoints
}

// New builds a pipeline from validated settings and a service client.
// checkpoints may be nil to disable resume support.
func New(settings *config.Settings, svc translator.Completer, checkpoints *store.Checkpoints) *Pipeline {
	return &Pipeline{
		settings:    settings,
		source:      settings.Source(),
		target:      settings.Target(),
		split:       splitter.New(settings.ChunkSize, settings.ChunkOverlap),
		trans:       translator.New(svc),
		checkpoints: checkpoints,
	}
}

// Chunks returns the chunks text would be translated as, without calling
// the service. Used for pre-run reporting.
func (p *Pipeline) Chunks(text string) []string {
	return p.split.Split(text)
}

// Translate returns a lazy sequence of per-chunk results in document
// order. Translation is strictly sequential with one service call in
// flight at a time; each result is yielded before the next chunk starts.
//
// The sequence is finite and ends early on the first error, which is
// yielded in place of a result; chunks yielded before that point remain
// valid. Context cancellation is observed between chunks and surfaces as
// ctx.Err(). The caller may stop consuming at any time. Re-invoking the
// returned sequence starts an independent traversal from the beginning.
func (p *Pipeline) Translate(ctx context.Context, text string) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		chunks := p.split.Split(text)
		total := len(chunks)

		var jobID string
		done := map[int]string{}
		if p.checkpoints != nil {
			meta := store.JobMeta{
				Model:        p.settings.ModelName,
				SourceCode:   p.settings.SourceCode,
				TargetCode:   p.settings.TargetCode,
				ChunkSize:    p.settings.ChunkSize,
				ChunkOverlap: p.settings.ChunkOverlap,
				TotalChunks:  total,
			}
			var err error
			jobID, done, err = p.checkpoints.BeginJob(ctx, store.JobKey(text, meta), meta)
			if err != nil {
				yield(Result{Total: total}, fmt.Errorf("checkpoint: %w", err))
				return
			}
		}

		for i, chunk := range chunks {
			if err := ctx.Err(); err != nil {
				yield(Result{Index: i, Total: total}, err)
				return
			}

			out, ok := done[i]
			if !ok {
				var err error
				out, err = p.trans.Translate(ctx, prompt.Build(p.source, p.target, chunk))
				if err != nil {
					yield(Result{Index: i, Total: total}, err)
					return
				}
				if p.checkpoints != nil {
					// Checkpointing is best effort; a write failure must
					// not abort a translation that already succeeded.
					_ = p.checkpoints.SaveChunk(ctx, jobID, i, out)
				}
			}

			if !yield(Result{Index: i, Total: total, Text: out}, nil) {
				return
			}
		}

		if p.checkpoints != nil {
			_ = p.checkpoints.FinishJob(ctx, jobID)
		}
	}
}
