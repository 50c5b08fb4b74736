package cmd

import (
	"os"
	"runtime"
	"sync"

	"github.com/eleventy7/lintal/internal/editorconfig"
	"github.com/eleventy7/lintal/internal/hostconfig"
	"github.com/eleventy7/lintal/internal/linter"
	"github.com/eleventy7/lintal/internal/rules"
)

// fileResult is one file's check outcome, paired with its content so the
// fixer and text reporter can later slice source snippets without a
// second read.
type fileResult struct {
	path        string
	content     []byte
	diagnostics []rules.Diagnostic
	err         error
}

// checkAll runs the check pipeline over files with a bounded worker pool,
// one goroutine per slot mirroring the engine's per-file scheduling
// model: each worker reads, parses and checks a file independently, with
// no shared mutable state beyond the immutable rule registry and
// dispatch table linter.CheckFile builds internally.
func checkAll(files []string, cfg *resolvedConfig, channel linter.Channel) ([]rules.Diagnostic, map[string][]byte, []error) {
	activeRules := linter.RulesFor(cfg.Merged)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	results := make([]fileResult, len(files))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = checkOneFile(files[i], activeRules, cfg, channel)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var diagnostics []rules.Diagnostic
	sources := make(map[string][]byte, len(files))
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		sources[r.path] = r.content
		diagnostics = append(diagnostics, r.diagnostics...)
	}
	return diagnostics, sources, errs
}

func checkOneFile(path string, activeRules []rules.Rule, cfg *resolvedConfig, channel linter.Channel) fileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}

	result, err := linter.CheckFile(linter.Input{
		FilePath: path,
		Content:  content,
		Rules:    activeRules,
		RuleConfig: func(ruleCode string) any {
			return ruleConfigFor(ruleCode, path, cfg.Merged)
		},
		SuppressionFilters: cfg.Filters,
		FileSuppressions:   cfg.FileTable,
		Channel:            channel,
	})
	if err != nil {
		return fileResult{path: path, err: err}
	}
	if result.Skipped {
		return fileResult{path: path, content: content}
	}
	return fileResult{path: path, content: content, diagnostics: result.Diagnostics}
}

// ruleConfigFor resolves a rule's configuration from the checkstyle
// module's declared properties, layered over .editorconfig-derived
// defaults for path so indentation- and line-length-sensitive rules get
// a non-hardcoded fallback even when the checkstyle XML and host TOML
// are both silent on a property. Rule packages accept their own option
// struct via ConfigurableRule; for now lintal passes through raw string
// properties and leaves typed decoding to a future ruleschema-backed
// layer (see internal/ruleschema), so rules fall back to their own
// defaults when no typed config is wired here.
func ruleConfigFor(ruleCode, path string, merged *hostconfig.MergedConfig) any {
	props := map[string]string{}
	if merged != nil {
		for k, v := range merged.Properties(ruleCode) {
			props[k] = v
		}
	}
	props = editorconfig.Resolve(path).ApplyDefaults(props)
	if len(props) == 0 {
		return nil
	}
	return props
}
