// Package shader compiles GLSL programs and resolves their uniforms.
package shader

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked GL program with a uniform location cache.
type Program struct {
	ID   uint32
	Name string

	uniforms map[string]int32
}

// CompileError reports a stage that failed to compile or a program that
// failed to link, with the offending source lines.
type CompileError struct {
	Program string
	Stage   string
	Log     string
	Excerpt string
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Program, e.Stage, strings.TrimRight(e.Log, "\x00\n "))
	if e.Excerpt != "" {
		msg += "\n" + e.Excerpt
	}
	return msg
}

// Compile builds and links a program from vertex and fragment sources.
func Compile(name, vertexSrc, fragmentSrc string) (*Program, error) {
	vertShader, err := compileStage(name, "vertex", vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileStage(name, "fragment", fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragShader)

	id := gl.CreateProgram()
	gl.AttachShader(id, vertShader)
	gl.AttachShader(id, fragShader)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(id, logLen, nil, buf) })
		gl.DeleteProgram(id)
		return nil, &CompileError{Program: name, Stage: "link", Log: log}
	}

	return &Program{ID: id, Name: name, uniforms: make(map[string]int32)}, nil
}

func compileStage(program, stage, source string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(sh, logLen, nil, buf) })
		gl.DeleteShader(sh)
		return 0, &CompileError{Program: program, Stage: stage, Log: log, Excerpt: Excerpt(source, log, 2)}
	}
	return sh, nil
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	read(&buf[0])
	return string(buf)
}

// Location returns the uniform location for name, or -1 when the program
// has no such active uniform. Lookups are cached.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// Use binds the program.
func (p *Program) Use() { gl.UseProgram(p.ID) }

// SetFloat sets a float uniform if the program has it.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetVec3 sets a vec3 uniform if the program has it.
func (p *Program) SetVec3(name string, v [3]float32) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetMat4 sets a column-major mat4 uniform if the program has it.
func (p *Program) SetMat4(name string, m [16]float32) {
	if loc := p.Location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// Delete frees the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Matches "0:12(5): error", "ERROR: 0:12: ..." and "0(12) : error".
var logLine = regexp.MustCompile(`\d+[:(](\d+)[():]`)

// Excerpt returns the source lines named in a driver info log, each with
// context lines around it, numbered from 1. Logs without line numbers
// yield "".
func Excerpt(source, log string, context int) string {
	lines := strings.Split(source, "\n")
	wanted := map[int]bool{}
	var order []int
	for _, m := range logLine.FindAllStringSubmatch(log, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(lines) {
			continue
		}
		for i := max(1, n-context); i <= min(len(lines), n+context); i++ {
			if !wanted[i] {
				wanted[i] = true
				order = append(order, i)
			}
		}
	}
	if len(order) == 0 {
		return ""
	}

	var b strings.Builder
	prev := 0
	slices.Sort(order)
	for _, i := range order {
		if prev != 0 && i != prev+1 {
			b.WriteString("    ...\n")
		}
		fmt.Fprintf(&b, "%4d| %s\n", i, lines[i-1])
		prev = i
	}
	return b.String()
}
