package loaders

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

// ShaderLoader reads GLSL source text. The resource data is a string.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(fsys fs.FS, p string, assetType metadata.ResourceType) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeShader {
		return nil, fmt.Errorf("shader loader cannot load resource type %d", assetType)
	}
	if _, ok := metadata.ShaderStageFromExtension(path.Ext(p)); !ok {
		return nil, fmt.Errorf("%s is not a shader source", p)
	}
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     strings.TrimSuffix(path.Base(p), path.Ext(p)),
		FullPath: p,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (sl *ShaderLoader) Unload(r *metadata.Resource) error {
	r.Data = nil
	r.DataSize = 0
	return nil
}
