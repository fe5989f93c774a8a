// Package build drives template compilation: it locates manifests, compiles
// every template they define and writes the requested dumps.
package build

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stc/archive"
	"stc/common"
	"stc/compile"
	"stc/config"
	"stc/css"
	"stc/state"
	"stc/template"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	// Destination argument wins over configuration, empty means writing next
	// to the source manifest.
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = env.Cfg.Compile.Output.Dir
	}
	if len(dst) != 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := common.MustParseDumpFmt(env.Cfg.Compile.Output.Format)
	if name := cmd.String("format"); len(name) > 0 {
		f, err := common.ParseDumpFmt(name)
		if err != nil {
			log.Warn("Unknown dump format requested, using configured one", zap.Error(err))
		} else {
			format = f
		}
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	env.OnlyNames = cmd.StringSlice("name")
	if cmd.Bool("verify") {
		env.Cfg.Compile.Verify = true
	}
	if cmd.Bool("deterministic") {
		env.Cfg.Compile.Naming.Deterministic = true
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// process handles the core compilation logic independently of CLI framework.
// It determines the input type (directory, archive, or single manifest) and
// processes accordingly.
func process(ctx context.Context, src, dst string, format common.DumpFmt, log *zap.Logger) error {
	pattern := state.EnvFromContext(ctx).Cfg.Compile.ManifestPattern

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			effDst := dst
			if len(effDst) == 0 {
				effDst = head
			}
			if err := processDir(ctx, head, effDst, format, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		arc, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			effDst := dst
			if len(effDst) == 0 {
				effDst = filepath.Dir(head)
			}
			if err := processArchive(ctx, head, tail, "", effDst, format, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		manifest, enc, err := isManifestFile(head, pattern)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if manifest && len(tail) == 0 {
			// we have a manifest, it cannot have tail
			effDst := dst
			if len(effDst) == 0 {
				effDst = filepath.Dir(head)
			}
			file, err := os.Open(head)
			if err != nil {
				return fmt.Errorf("unable to open manifest (%s): %w", head, err)
			}
			defer file.Close()
			if err := processManifest(ctx, selectReader(file, enc), filepath.Base(head), effDst, format, log); err != nil {
				return fmt.Errorf("unable to process manifest (%s): %w", head, err)
			}
			break
		}

		raw, enc, err := isTemplateFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if raw && len(tail) == 0 {
			effDst := dst
			if len(effDst) == 0 {
				effDst = filepath.Dir(head)
			}
			file, err := os.Open(head)
			if err != nil {
				return fmt.Errorf("unable to open template source (%s): %w", head, err)
			}
			defer file.Close()
			if err := processRawTemplate(ctx, selectReader(file, enc), filepath.Base(head), effDst, format, log); err != nil {
				return fmt.Errorf("unable to process template source (%s): %w", head, err)
			}
			break
		}
		return fmt.Errorf("input was not recognized as template manifest (%s)", head)

	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding template manifests and processes
// them.
func processDir(ctx context.Context, dir, dst string, format common.DumpFmt, log *zap.Logger) (err error) {
	pattern := state.EnvFromContext(ctx).Cfg.Compile.ManifestPattern

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		arc, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if arc {
			if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, format, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		manifest, enc, err := isManifestFile(path, pattern)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !manifest {
			log.Debug("Skipping file, not recognized as template manifest", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process manifest", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processManifest(ctx, selectReader(file, enc), src, dst, format, log); err != nil {
			log.Error("Unable to process manifest", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processArchive compiles manifests found inside a zip archive under
// "pathIn". Entries are processed in natural sort order so numbered manifests
// come out stable regardless of archive layout.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, format common.DumpFmt, log *zap.Logger) (err error) {
	pattern := state.EnvFromContext(ctx).Cfg.Compile.ManifestPattern

	var entries []*zip.File
	err = archive.Walk(path, pattern, func(_ string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(pathIn) != 0 && !strings.HasPrefix(f.FileHeader.Name, pathIn) {
			return nil
		}
		entries = append(entries, f)
		return nil
	})
	if err != nil {
		return err
	}

	defer func() {
		if err == nil && len(entries) == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	sort.Slice(entries, func(i, j int) bool {
		return natural.Less(entries[i].FileHeader.Name, entries[j].FileHeader.Name)
	})

	for _, f := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		enc, err := manifestEncodingInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", path), zap.String("path", f.FileHeader.Name), zap.Error(err))
			continue
		}

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process manifest in archive",
				zap.String("archive", path), zap.String("file", f.FileHeader.Name), zap.Error(err))
			continue
		}

		src := filepath.Join(pathOut, filepath.FromSlash(f.FileHeader.Name))
		if err := processManifest(ctx, selectReader(r, enc), src, dst, format, log); err != nil {
			log.Error("Unable to process manifest in archive",
				zap.String("archive", path), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		r.Close()
	}
	return nil
}

// processManifest compiles all templates from a single manifest. "src" is
// part of the source path (always including file name) relative to the
// original input. When actual file was specified it will be just base file
// name without a path. When looking inside archive or directory it will be
// relative path inside archive or directory. "dst" is the destination
// directory for compiled dumps.
func processManifest(ctx context.Context, r io.Reader, src, dst string, format common.DumpFmt, log *zap.Logger) (rerr error) {
	log.Info("Compilation starting", zap.String("from", src))
	defer func(start time.Time) {
		// a single broken template should not stop a batch, recover turns
		// panics into ordinary errors
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else {
			log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	m, err := LoadManifest(r)
	if err != nil {
		return fmt.Errorf("unable to parse manifest (%s): %w", src, err)
	}
	return compileManifest(ctx, m, src, dst, format, log)
}

// processRawTemplate compiles a bare template source file as a single style
// template named after the file.
func processRawTemplate(ctx context.Context, r io.Reader, src, dst string, format common.DumpFmt, log *zap.Logger) (rerr error) {
	log.Info("Compilation starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else {
			log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("unable to read template source (%s): %w", src, err)
	}

	m := &Manifest{Templates: []TemplateSpec{{
		Name: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		CSS:  string(data),
	}}}
	return compileManifest(ctx, m, src, dst, format, log)
}

func compileManifest(ctx context.Context, m *Manifest, src, dst string, format common.DumpFmt, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	namer := NewNamer(env.Cfg.Compile.Naming.ClassPrefix, env.Cfg.Compile.Naming.Deterministic)

	for _, spec := range m.Templates {
		if err := ctx.Err(); err != nil {
			return multierr.Append(rerr, err)
		}
		if len(env.OnlyNames) != 0 && !slices.Contains(env.OnlyNames, spec.Name) {
			log.Debug("Skipping template, not selected", zap.String("template", spec.Name))
			continue
		}
		if err := processTemplate(ctx, spec, namer, src, dst, format, log); err != nil {
			log.Error("Unable to compile template", zap.String("template", spec.Name), zap.Error(err))
			rerr = multierr.Append(rerr, err)
		}
	}
	return rerr
}

// processTemplate compiles a single template and writes its dump.
func processTemplate(ctx context.Context, spec TemplateSpec, namer *Namer, src, dst string, format common.DumpFmt, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	node, err := template.Parse(spec.CSS)
	if err != nil {
		return fmt.Errorf("unable to parse template source (%s): %w", spec.Name, err)
	}

	if env.Cfg.Compile.Verify {
		if err := verifyTemplate(node); err != nil {
			return fmt.Errorf("template verification failed (%s): %w", spec.Name, err)
		}
	}

	out, err := compileTemplate(node, spec.Kind, env, log)
	if err != nil {
		return fmt.Errorf("unable to compile template (%s): %w", spec.Name, err)
	}

	class := namer.ClassName(spec.Name)
	values := buildValues(config.OutputNameTemplateFieldName, spec, class, src, format)

	data, err := renderDump(out, values, format)
	if err != nil {
		return err
	}

	outputName := buildOutputPath(values, src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write compiled template: %w", err)
	}

	log.Info("Template compiled",
		zap.String("template", spec.Name), zap.String("class", class),
		zap.Stringer("shape", out.Kind), zap.String("to", outputName))

	// Store compilation result for debugging
	if err := env.Rpt.StoreCopy(fmt.Sprintf("result-%s%s", spec.Name, filepath.Ext(outputName)), outputName); err != nil {
		log.Warn("Unable to store result in report", zap.Error(err))
	}
	return nil
}

// verifyTemplate round trips the template through segment extraction and
// recreation and compares renderings, catching corrupted span lists before
// they reach the compiler.
func verifyTemplate(node *template.Node) error {
	segs, err := template.Extract(node)
	if err != nil {
		return err
	}
	re, err := template.Recreate(node, segs)
	if err != nil {
		return err
	}
	if got, want := re.String(), node.String(); got != want {
		return fmt.Errorf("segment round trip mismatch: %q != %q", got, want)
	}
	return nil
}

func compileTemplate(node *template.Node, kind common.TemplateKind, env *state.LocalEnv, log *zap.Logger) (*compile.Output, error) {
	pre := css.NewPreprocessor(log)

	prefix := func(cssText string) string { return cssText }
	if env.Cfg.Compile.Vendor.Enable {
		prefix = css.NewPrefixer(compile.MarkerBase, log).Prefix
	}

	return compile.NewCompiler(pre.Preprocess, prefix, log).Compile(node, kind.Keyframes())
}
