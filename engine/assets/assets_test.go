package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

func TestLoadEmbeddedShaderConfig(t *testing.T) {
	am := NewAssetManager()
	if err := am.Initialize("", false); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	cfg, err := am.LoadShaderConfig(DefaultShaderName)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != DefaultShaderName {
		t.Errorf("name = %q", cfg.Name)
	}
	if !strings.Contains(cfg.VertexSource, "gl_Position") {
		t.Errorf("vertex source looks wrong: %q", cfg.VertexSource)
	}
	if !strings.Contains(cfg.FragmentSource, "FragColor") {
		t.Errorf("fragment source looks wrong: %q", cfg.FragmentSource)
	}
}

func TestLoadMissingAsset(t *testing.T) {
	am := NewAssetManager()
	if err := am.Initialize("", false); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	if _, err := am.LoadShaderConfig("nope"); !errors.Is(err, core.ErrAssetNotFound) {
		t.Fatalf("err = %v, want ErrAssetNotFound", err)
	}
	if _, err := am.LoadAsset("triangle.vert", metadata.ResourceTypeNone); err == nil {
		t.Fatal("no loader is registered for untyped assets")
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	const custom = "#version 330 core\nout vec4 FragColor;\nvoid main() { FragColor = vec4(0.0, 1.0, 0.0, 1.0); }\n"
	if err := os.WriteFile(filepath.Join(dir, "triangle.frag"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	am := NewAssetManager()
	if err := am.Initialize(dir, false); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	cfg, err := am.LoadShaderConfig(DefaultShaderName)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FragmentSource != custom {
		t.Errorf("fragment source was not taken from disk: %q", cfg.FragmentSource)
	}
	if !strings.Contains(cfg.VertexSource, "gl_Position") {
		t.Error("vertex source should fall back to the embedded one")
	}
}

func TestWatchReportsShaderChanges(t *testing.T) {
	dir := t.TempDir()
	am := NewAssetManager()
	if err := am.Initialize(dir, true); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "triangle.vert"), []byte("void main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-am.Changes():
		if name != "triangle" {
			t.Fatalf("change for %q, want triangle", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	res, err := am.LoadAsset("triangle.vert", metadata.ResourceTypeShader)
	if err != nil {
		t.Fatal(err)
	}
	if res.Data.(string) != "void main() {}" {
		t.Errorf("watched file not picked up: %q", res.Data)
	}
}

func TestNestedShaderOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	const custom = "#version 330 core\nout vec4 FragColor;\nvoid main() { FragColor = vec4(0.0, 0.0, 1.0, 1.0); }\n"
	if err := os.MkdirAll(filepath.Join(dir, "shaders", "triangle"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shaders", "triangle", "triangle.frag"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	am := NewAssetManager()
	if err := am.Initialize(dir, false); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	cfg, err := am.LoadShaderConfig(DefaultShaderName)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FragmentSource != custom {
		t.Errorf("nested fragment source was not taken from disk: %q", cfg.FragmentSource)
	}
}

func TestWatchReportsNestedShaderChanges(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "shaders")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	am := NewAssetManager()
	if err := am.Initialize(dir, true); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	const custom = "#version 330 core\nout vec4 FragColor;\nvoid main() { FragColor = vec4(1.0); }\n"
	if err := os.WriteFile(filepath.Join(sub, "triangle.frag"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-am.Changes():
		if name != DefaultShaderName {
			t.Fatalf("change for %q, want %s", name, DefaultShaderName)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	// The write may still be in flight when the first event arrives.
	deadline := time.Now().Add(5 * time.Second)
	for {
		cfg, err := am.LoadShaderConfig(DefaultShaderName)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.FragmentSource == custom {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reload returned a stale fragment source: %q", cfg.FragmentSource)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := os.Remove(filepath.Join(sub, "triangle.frag")); err != nil {
		t.Fatal(err)
	}
	deadline = time.Now().Add(5 * time.Second)
	for {
		cfg, err := am.LoadShaderConfig(DefaultShaderName)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(cfg.FragmentSource, "0.5") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("removed shader should fall back to the embedded source")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRemoveKeepsOtherFileWithSameName(t *testing.T) {
	dir := t.TempDir()
	am := NewAssetManager()
	if err := am.Initialize(dir, false); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	a := filepath.Join(dir, "a", "triangle.vert")
	b := filepath.Join(dir, "b", "triangle.vert")
	am.handleFileEvent(a)
	am.handleFileEvent(b)
	if am.removeAsset(a) {
		t.Fatal("removing a shadowed file must not drop the live entry")
	}
	if !am.removeAsset(b) {
		t.Fatal("removing the indexed file should drop it")
	}
}

func TestShutdown(t *testing.T) {
	am := NewAssetManager()
	if err := am.Initialize(t.TempDir(), true); err != nil {
		t.Fatal(err)
	}
	if err := am.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-am.Changes(); ok {
		t.Error("Changes should be closed after Shutdown")
	}
	if err := am.Shutdown(); !errors.Is(err, core.ErrAssetManagerClosed) {
		t.Errorf("second Shutdown = %v", err)
	}
}

func TestDetermineAssetType(t *testing.T) {
	tests := map[string]metadata.ResourceType{
		"a/triangle.vert": metadata.ResourceTypeShader,
		"triangle.frag":   metadata.ResourceTypeShader,
		"config.toml":     metadata.ResourceTypeNone,
		"image.png":       metadata.ResourceTypeNone,
	}
	for p, want := range tests {
		if got := determineAssetType(p); got != want {
			t.Errorf("determineAssetType(%q) = %d, want %d", p, got, want)
		}
	}
}
