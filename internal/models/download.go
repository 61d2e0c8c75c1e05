// Package models downloads pre-converted ggml whisper models from
// Hugging Face.
package models

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
)

const repoURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// known lists the downloadable model names.
var known = map[string]bool{
	"tiny":           true,
	"tiny.en":        true,
	"base":           true,
	"base.en":        true,
	"small":          true,
	"small.en":       true,
	"medium":         true,
	"medium.en":      true,
	"large-v2":       true,
	"large-v3":       true,
	"large-v3-turbo": true,
}

// Known returns the downloadable model names, sorted.
func Known() []string {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileName returns the on-disk file name for a model, e.g.
// "ggml-base.en.bin".
func FileName(name string) string {
	return "ggml-" + name + ".bin"
}

// URL returns the download URL for a known model name.
func URL(name string) (string, error) {
	if !known[name] {
		return "", fmt.Errorf("models: unknown model %q (known: %v)", name, Known())
	}
	return repoURL + "/" + FileName(name), nil
}

// Download fetches a model into destDir and returns its path. An existing
// non-empty file is kept as is. Progress is written to stderr.
func Download(name, destDir string) (string, error) {
	url, err := URL(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("models: creating dir: %w", err)
	}

	destPath := filepath.Join(destDir, FileName(name))
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		return destPath, nil
	}

	resp, err := http.Get(url) //nolint:gosec // URL is built from a vetted name
	if err != nil {
		return "", fmt.Errorf("models: downloading %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("models: download %s failed: HTTP %d", name, resp.StatusCode)
	}

	// Write to a temp file first, then rename, so an interrupted download
	// never leaves a half-written model behind.
	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("models: creating temp file: %w", err)
	}

	pw := &progressWriter{
		writer: f,
		total:  resp.ContentLength,
		label:  FileName(name),
	}
	_, err = io.Copy(pw, resp.Body)
	_ = f.Close()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("models: writing model file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("models: moving model file: %w", err)
	}
	return destPath, nil
}

// progressWriter forwards writes and prints a running percentage.
type progressWriter struct {
	writer  io.Writer
	total   int64
	written int64
	label   string
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)
	if pw.total > 0 {
		fmt.Fprintf(os.Stderr, "\r  %s: %5.1f%% of %.0f MB",
			pw.label,
			float64(pw.written)/float64(pw.total)*100,
			float64(pw.total)/(1024*1024))
	} else {
		fmt.Fprintf(os.Stderr, "\r  %s: %.1f MB", pw.label, float64(pw.written)/(1024*1024))
	}
	return n, err
}
