package metadata

import "fmt"

/**
 * @brief Represents the current state of a given shader program.
 */
type ShaderState int

const (
	/** @brief The program has not yet gone through the creation process, and is unusable.*/
	SHADER_STATE_NOT_CREATED ShaderState = iota
	/** @brief The program is linked and ready for use.*/
	SHADER_STATE_INITIALIZED
	/** @brief The program was released and its handle is no longer valid.*/
	SHADER_STATE_RELEASED
)

/** @brief The programmable pipeline stages a shader source can target. */
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", int(s))
}

// Extension is the file extension used for sources of this stage.
func (s ShaderStage) Extension() string {
	switch s {
	case ShaderStageVertex:
		return ".vert"
	case ShaderStageFragment:
		return ".frag"
	}
	return ""
}

// ShaderStageFromExtension is the inverse of ShaderStage.Extension.
func ShaderStageFromExtension(ext string) (ShaderStage, bool) {
	switch ext {
	case ".vert":
		return ShaderStageVertex, true
	case ".frag":
		return ShaderStageFragment, true
	}
	return 0, false
}

/**
 * @brief Configuration for a shader program: a name and the source text of
 * every stage that gets linked into it.
 */
type ShaderConfig struct {
	/** @brief The name of the shader program, also the base name of its source files. */
	Name string
	/** @brief Source text of the vertex stage. */
	VertexSource string
	/** @brief Source text of the fragment stage. */
	FragmentSource string
}

// Source returns the text for stage.
func (c *ShaderConfig) Source(stage ShaderStage) (string, error) {
	switch stage {
	case ShaderStageVertex:
		return c.VertexSource, nil
	case ShaderStageFragment:
		return c.FragmentSource, nil
	}
	return "", fmt.Errorf("shader config %q: no source for %s", c.Name, stage)
}
