package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/hello-triangle/engine/assets/loaders"
	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

//go:embed shaders
var builtin embed.FS

// DefaultShaderName is the embedded triangle shader pair.
const DefaultShaderName = "triangle"

type AssetInfo struct {
	// Slash separated path relative to the assets directory.
	Path string
	Type metadata.ResourceType
}

// AssetManager resolves assets from an optional directory on disk first and
// falls back to the sources embedded in the binary. Files on disk are indexed
// by file name, so a shader may live in any subdirectory of the assets
// directory.
type AssetManager struct {
	assets   map[string]AssetInfo
	loaders  map[metadata.ResourceType]Loader
	embedded fs.FS
	dir      string

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
}

func NewAssetManager() *AssetManager {
	embedded, _ := fs.Sub(builtin, "shaders")
	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		embedded: embedded,
		changes:  make(chan string, 16),
		done:     make(chan struct{}),
	}
}

// Initialize indexes the shader sources under assetsDir (if not empty) and
// registers the loaders. With watch set, shader files created, written or
// removed anywhere under assetsDir are reported on Changes.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})

	if assetsDir == "" {
		return nil
	}
	abs, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.dir = abs

	if watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = w
		am.wg.Add(1)
		go am.start()
	}
	return am.watchRecursive(am.dir)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Changes delivers the base name of every shader whose source changed on disk.
// The channel is closed by Shutdown.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

// LoadAsset loads the named file (relative to the assets directory) using
// the loader registered for resourceType.
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType) (*metadata.Resource, error) {
	loader, ok := am.loaders[resourceType]
	if !ok {
		return nil, fmt.Errorf("no loader registered for asset type: %d", resourceType)
	}

	am.mutex.RLock()
	asset, onDisk := am.assets[name]
	am.mutex.RUnlock()

	if onDisk {
		core.LogDebug("loading %s from %s", asset.Path, am.dir)
		return loader.Load(os.DirFS(am.dir), asset.Path, resourceType)
	}
	if _, err := fs.Stat(am.embedded, name); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	return loader.Load(am.embedded, name, resourceType)
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource, resourceType metadata.ResourceType) error {
	loader, ok := am.loaders[resourceType]
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %d", resourceType)
	}
	return loader.Unload(asset)
}

// LoadShaderConfig loads the vertex and fragment sources of the named shader.
func (am *AssetManager) LoadShaderConfig(name string) (*metadata.ShaderConfig, error) {
	cfg := &metadata.ShaderConfig{Name: name}
	for _, stage := range []metadata.ShaderStage{metadata.ShaderStageVertex, metadata.ShaderStageFragment} {
		res, err := am.LoadAsset(name+stage.Extension(), metadata.ResourceTypeShader)
		if err != nil {
			return nil, err
		}
		src, _ := res.Data.(string)
		switch stage {
		case metadata.ShaderStageVertex:
			cfg.VertexSource = src
		case metadata.ShaderStageFragment:
			cfg.FragmentSource = src
		}
		_ = am.UnloadAsset(res, metadata.ResourceTypeShader)
	}
	return cfg, nil
}

// Shutdown stops the watcher and closes Changes.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return core.ErrAssetManagerClosed
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	if am.fsnotify != nil {
		if err := am.fsnotify.Close(); err != nil {
			return err
		}
	}
	close(am.changes)
	return nil
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			return
		}
	}
}

func (am *AssetManager) handleWatchEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s.IsDir() {
		if e.Has(fsnotify.Create) {
			if err := am.watchRecursive(e.Name); err != nil {
				core.LogError("asset watcher: %s", err)
			}
		}
		return
	}

	switch {
	case e.Has(fsnotify.Create) || e.Has(fsnotify.Write):
		if am.handleFileEvent(e.Name) {
			am.notify(e.Name)
		}
	case e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename):
		// Can't stat a deleted path, so just try to remove it from the watch list.
		_ = am.fsnotify.Remove(e.Name)
		if am.removeAsset(e.Name) {
			am.notify(e.Name)
		}
	}
}

// notify publishes the shader name of path. A full channel means a reload is
// already pending, so the name is dropped.
func (am *AssetManager) notify(p string) {
	if determineAssetType(p) != metadata.ResourceTypeShader {
		return
	}
	name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	select {
	case am.changes <- name:
	default:
	}
}

// watchRecursive indexes every file under root and, when watching, adds all
// directories to the watch list.
func (am *AssetManager) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if am.fsnotify != nil {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file, reporting whether it is a
// known asset.
func (am *AssetManager) handleFileEvent(p string) bool {
	assetType := determineAssetType(p)
	if assetType == metadata.ResourceTypeNone {
		return false
	}
	rel, err := filepath.Rel(am.dir, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	key := path.Base(rel)

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if prev, ok := am.assets[key]; ok && prev.Path != rel {
		core.LogWarn("asset %s replaces %s", rel, prev.Path)
	}
	am.assets[key] = AssetInfo{
		Path: rel,
		Type: assetType,
	}
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(p string) bool {
	rel, err := filepath.Rel(am.dir, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	key := path.Base(rel)

	am.mutex.Lock()
	defer am.mutex.Unlock()
	// Another file with the same name may own the entry.
	if asset, ok := am.assets[key]; !ok || asset.Path != rel {
		return false
	}
	delete(am.assets, key)
	return true
}

func determineAssetType(p string) metadata.ResourceType {
	ext := path.Ext(filepath.ToSlash(p))
	if _, ok := metadata.ShaderStageFromExtension(ext); ok {
		return metadata.ResourceTypeShader
	}
	return metadata.ResourceTypeNone
}
