package opengl

import (
	"errors"
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

func TestShaderType(t *testing.T) {
	tests := []struct {
		stage metadata.ShaderStage
		want  uint32
	}{
		{metadata.ShaderStageVertex, gl.VERTEX_SHADER},
		{metadata.ShaderStageFragment, gl.FRAGMENT_SHADER},
	}
	for _, tt := range tests {
		got, err := ShaderType(tt.stage)
		if err != nil || got != tt.want {
			t.Errorf("ShaderType(%s) = %#x, %v; want %#x", tt.stage, got, err, tt.want)
		}
	}
	if _, err := ShaderType(metadata.ShaderStage(9)); !errors.Is(err, core.ErrUnknownShaderStage) {
		t.Errorf("unknown stage err = %v", err)
	}
}

func TestDrawModeTriangleList(t *testing.T) {
	if DrawMode(metadata.PrimitiveTopologyTriangleList) != gl.TRIANGLES {
		t.Fatal("triangle list must map to GL_TRIANGLES")
	}
	if DrawMode(metadata.PrimitiveTopologyTriangleStrip) != gl.TRIANGLE_STRIP {
		t.Fatal("triangle strip must map to GL_TRIANGLE_STRIP")
	}
}
