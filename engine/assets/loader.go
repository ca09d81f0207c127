package assets

import (
	"io/fs"

	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

type Loader interface {
	Load(fsys fs.FS, path string, assetType metadata.ResourceType) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
