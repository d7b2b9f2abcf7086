package extract

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/pool"
)

// Source is one input file.
type Source struct {
	Path    string
	Content []byte
}

// Result holds the outcome for one [Source]. Err is set when the file could
// not be parsed, in which case Functions is empty.
type Result struct {
	Err       error
	Path      string
	Functions []Function
}

// ParseFiles extracts functions from every file concurrently, bounded by
// [WithJobs]. Results are returned in input order. A failure in one file
// never affects another; files not yet started when ctx is cancelled report
// ctx.Err().
func ParseFiles(ctx context.Context, files []Source, opts ...Option) []Result {
	if len(files) == 0 {
		return nil
	}

	e := New(opts...)
	results := make([]Result, len(files))

	p := pool.New().WithMaxGoroutines(e.jobs).WithContext(ctx)

	for i, f := range files {
		p.Go(func(ctx context.Context) error {
			results[i] = e.parse(ctx, f)

			return nil
		})
	}

	// Tasks never return errors; failures are recorded per result.
	_ = p.Wait()

	return results
}

func (e *Extractor) parse(ctx context.Context, f Source) Result {
	res := Result{Path: f.Path}

	if err := ctx.Err(); err != nil {
		res.Err = err

		return res
	}

	fns, err := e.ExtractBytes(f.Path, f.Content)
	if err != nil {
		res.Err = err

		return res
	}

	res.Functions = fns

	e.logger.Debug("parsed file",
		slog.String("path", f.Path),
		slog.Int("functions", len(fns)),
	)

	return res
}
