package driver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lexkit/internal/diag"
	"lexkit/internal/grammar"
	"lexkit/internal/observ"
	"lexkit/internal/source"
	"lexkit/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла.
// Result is nil when the file could not be loaded; Bag then holds the I/O error.
type TokenizeDirResult struct {
	Path   string
	Result *TokenizeResult
	Bag    *diag.Bag
}

// ListFiles returns the files TokenizeDir would process, in processing order.
func ListFiles(dir string, opts Options) ([]string, error) {
	return listFiles(dir, opts.ext())
}

// listFiles возвращает отсортированный список файлов с расширением ext
func listFiles(dir, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir лексирует все файлы грамматики в директории параллельно.
// Each worker gets its own session, so symbols of different results are
// not comparable with each other.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	ctx, span := trace.Start(trace.WithFile(ctx, dir), trace.ScopeDriver, "tokenize_dir")
	defer span.End("")

	if _, err := grammar.Lookup(opts.Grammar, nil); err != nil {
		return nil, nil, err
	}
	files, err := listFiles(dir, opts.ext())
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все файлы: дальше FileSet только читается
	_, loadSpan := trace.Start(ctx, trace.ScopePass, "load")
	loaded := make([]*source.File, len(files))
	loadErrors := make(map[int]error, len(files))
	for _, path := range files {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	opts.emit(Event{Stage: StageLoad, Status: StatusWorking})
	for i, path := range files {
		fileID, err := fileSet.LoadWith(path, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
		if err != nil {
			// пустая запись, чтобы диагностика указывала на нужный путь
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[i] = err
			opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError})
		}
		loaded[i] = fileSet.Get(fileID)
	}
	loadSpan.Count(trace.Counts{Files: len(files), Failed: len(loadErrors)}).End("")
	opts.emit(Event{Stage: StageLex, Status: StatusWorking})

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				code := diag.IOLoadFileError
				if errors.Is(loadErr, source.ErrInvalidUTF8) {
					code = diag.IOInvalidEncoding
				}
				bag.Add(diag.NewError(code, loaded[i].ID, source.Range{}, "failed to load file: "+loadErr.Error()))
				results[i] = TokenizeDirResult{Path: path, Bag: bag}
				return nil
			}

			started := time.Now()
			opts.emit(Event{File: path, Stage: StageLex, Status: StatusWorking})
			sess := newSession(trace.FromContext(gctx), opts)
			res, err := tokenizeFile(gctx, sess, fileSet, loaded[i], observ.NewTimer(), opts)
			if err != nil {
				opts.emit(Event{File: path, Stage: StageLex, Status: StatusError, Elapsed: time.Since(started)})
				return err
			}
			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			counts := res.Counts()
			opts.emit(Event{
				File:    path,
				Stage:   StageDiagnose,
				Status:  status,
				Elapsed: time.Since(started),
				Tokens:  counts.Tokens,
				Invalid: counts.Invalid,
			})
			results[i] = TokenizeDirResult{Path: path, Result: res, Bag: res.Bag}
			return nil
		})
	}

	err = g.Wait()
	for _, r := range results {
		if r.Result != nil {
			span.Count(r.Result.Counts())
		}
	}
	span.Count(trace.Counts{Files: len(files), Failed: len(loadErrors)})
	return fileSet, results, err
}
