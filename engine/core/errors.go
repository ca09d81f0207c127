package core

import (
	"errors"
)

var (
	ErrShaderCompile          = errors.New("shader compilation failed")
	ErrProgramLink            = errors.New("shader program link failed")
	ErrUnknownShaderStage     = errors.New("unknown shader stage")
	ErrInvalidVertexLayout    = errors.New("vertex layout does not match buffer")
	ErrRendererNotInitialized = errors.New("renderer not initialized")
	ErrRendererReleased       = errors.New("renderer already released")
	ErrAssetNotFound          = errors.New("asset not found")
	ErrAssetManagerClosed     = errors.New("asset manager already closed")
)
