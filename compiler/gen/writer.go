package gen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/blueprint/schema"
)

// Bundle layout.
const (
	MigrationDir = "database/migrations"
	ModelDir     = "app/Models"

	// StampLayout is the time layout of migration file prefixes.
	StampLayout = "2006_01_02_150405"
)

// FileKind identifies the emitter that produced a File.
type FileKind string

// File kinds.
const (
	KindMigration FileKind = "migration"
	KindPivot     FileKind = "pivot"
	KindModel     FileKind = "model"
)

// File is one generated source file of a bundle.
type File struct {
	Kind FileKind
	// Path is slash-separated and relative to the bundle root.
	Path string
	// Title is the migration class name or the model class name.
	Title   string
	Content string
}

// Writer generates Laravel bundles with parallel execution.
type Writer struct {
	cfg *Config

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	FilesWritten   int
	TotalBytes     int64
	GenerateTime   int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// NewWriter creates a new bundle writer. A nil config means DefaultConfig.
func NewWriter(cfg *Config) *Writer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Writer{cfg: cfg}
}

// Metrics returns a copy of the generation metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// fileTask represents a single file generation task.
type fileTask struct {
	kind  FileKind
	path  string
	title string
	gen   func() (string, error)
}

// tasks lists the bundle files in output order: table migrations in model
// order, pivot migrations in discovery order, then model classes.
func (w *Writer) tasks(models []*schema.Model) []fileTask {
	var (
		tasks []fileTask
		stamp = w.cfg.Timestamp
	)
	if stamp.IsZero() {
		stamp = DefaultTimestamp
	}
	migration := func(table string) string {
		name := fmt.Sprintf("%s_create_%s_table.php", stamp.Format(StampLayout), table)
		stamp = stamp.Add(time.Second)
		return path.Join(MigrationDir, name)
	}
	if w.cfg.HasFeature(FeatureMigrations.Name) {
		for _, m := range models {
			table := TableName(m)
			tasks = append(tasks, fileTask{
				kind:  KindMigration,
				path:  migration(table),
				title: ClassName(table),
				gen:   func() (string, error) { return TableMigration(m) },
			})
		}
	}
	if w.cfg.HasFeature(FeaturePivots.Name) {
		for _, p := range DiscoverPivots(models) {
			tasks = append(tasks, fileTask{
				kind:  KindPivot,
				path:  migration(p.PivotTable),
				title: ClassName(p.PivotTable),
				gen:   func() (string, error) { return PivotMigration(p) },
			})
		}
	}
	if w.cfg.HasFeature(FeatureModels.Name) {
		ns := w.cfg.Namespace
		if ns == "" {
			ns = DefaultNamespace
		}
		for _, m := range models {
			tasks = append(tasks, fileTask{
				kind:  KindModel,
				path:  path.Join(ModelDir, m.Name+".php"),
				title: m.Name,
				gen:   func() (string, error) { return modelCode(m, ns) },
			})
		}
	}
	return tasks
}

// Files generates the bundle of the given models in parallel. The result
// order does not depend on scheduling. Two files with the same path, such as
// the classes of two models sharing a name, are a SchemaError.
func (w *Writer) Files(ctx context.Context, models []*schema.Model) ([]File, error) {
	start := time.Now()
	tasks := w.tasks(models)
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.path]; ok {
			return nil, NewSchemaError("", "", "duplicate bundle path "+t.path, nil)
		}
		seen[t.path] = struct{}{}
	}
	files := make([]File, len(tasks))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers())
	for i, t := range tasks {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			content, err := t.gen()
			if err != nil {
				return fmt.Errorf("generate %s: %w", t.path, err)
			}
			files[i] = File{Kind: t.kind, Path: t.path, Title: t.title, Content: content}
			w.cfg.logger().Debug("generated file", "path", t.path, "kind", t.kind, "bytes", len(content))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.metrics.FilesGenerated += len(files)
	for _, f := range files {
		w.metrics.TotalBytes += int64(len(f.Content))
	}
	w.metrics.GenerateTime += time.Since(start).Nanoseconds()
	w.mu.Unlock()
	return files, nil
}

// WriteDir generates the bundle and writes it under Config.Target. Unless
// Config.Force is set, nothing is written when any bundle file already
// exists.
func (w *Writer) WriteDir(ctx context.Context, models []*schema.Model) error {
	if w.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	files, err := w.Files(ctx, models)
	if err != nil {
		return err
	}
	if !w.cfg.Force {
		for _, f := range files {
			if _, err := os.Stat(w.fullPath(f)); err == nil {
				return NewGenerationError("write", f.Path, msgExists, fs.ErrExist)
			}
		}
	}
	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers())
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	w.mu.Lock()
	w.metrics.WriteTime += time.Since(start).Nanoseconds()
	w.mu.Unlock()
	w.cfg.logger().Info("bundle written", "target", w.cfg.Target, "files", len(files))
	return nil
}

const msgExists = "file exists, use force to overwrite"

func (w *Writer) fullPath(f File) string {
	return filepath.Join(w.cfg.Target, filepath.FromSlash(f.Path))
}

// writeFile writes a single file. Without Config.Force the file is created
// exclusively.
func (w *Writer) writeFile(f File) error {
	fullPath := w.fullPath(f)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError("write", f.Path, "create directory", err)
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if w.cfg.Force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	fh, err := os.OpenFile(fullPath, flag, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return NewGenerationError("write", f.Path, msgExists, err)
	}
	if err != nil {
		return NewGenerationError("write", f.Path, "open file", err)
	}
	if _, err := io.WriteString(fh, f.Content); err != nil {
		fh.Close()
		return NewGenerationError("write", f.Path, "write file", err)
	}
	if err := fh.Close(); err != nil {
		return NewGenerationError("write", f.Path, "close file", err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.mu.Unlock()
	return nil
}

// WriteZip generates the bundle and writes it to out as a zip archive with
// the same layout WriteDir produces.
func (w *Writer) WriteZip(ctx context.Context, models []*schema.Model, out io.Writer) error {
	files, err := w.Files(ctx, models)
	if err != nil {
		return err
	}
	start := time.Now()
	zw := zip.NewWriter(out)
	for _, f := range files {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: f.Path, Method: zip.Deflate})
		if err != nil {
			return NewGenerationError("zip", f.Path, "create entry", err)
		}
		if _, err := io.WriteString(fw, f.Content); err != nil {
			return NewGenerationError("zip", f.Path, "write entry", err)
		}
	}
	if err := zw.Close(); err != nil {
		return NewGenerationError("zip", "", "close archive", err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten += len(files)
	w.metrics.WriteTime += time.Since(start).Nanoseconds()
	w.mu.Unlock()
	w.cfg.logger().Info("bundle archived", "files", len(files))
	return nil
}

func (w *Writer) workers() int {
	if w.cfg.Workers < 1 {
		return 1
	}
	return w.cfg.Workers
}
