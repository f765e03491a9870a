package script

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gravityshot/physics"
)

func TestNewField_Wind(t *testing.T) {
	f, err := NewField(`function force(x, y, z, mass) { return [mass * 2, 0, 0]; }`, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, mgl64.Vec3{6, 0, 0}, f.Force(mgl64.Vec3{10, 20, 0}, 3))
	assert.NoError(t, f.Err())
}

func TestNewField_UsesPosition(t *testing.T) {
	f, err := NewField(`
		var k = 0.5;
		function force(x, y, z, mass) {
			return [-k * x, -k * y, -k * z];
		}
	`, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, mgl64.Vec3{-1, 2, -3}, f.Force(mgl64.Vec3{2, -4, 6}, 1))
}

func TestNewField_Errors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"syntax", `function force( {`, "script parse error"},
		{"missing", `var gravity = 1;`, "must define a 'force' function"},
		{"not a function", `var force = 3;`, "must define a 'force' function"},
		{"wrong arity", `function force() { return [1, 2]; }`, "3 components"},
		{"throws", `function force() { throw new Error("boom"); }`, "force function failed"},
		{"not an array", `function force() { return "up"; }`, "failed to read force"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(tt.code, zerolog.Nop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestField_RuntimeErrorGivesNoForce(t *testing.T) {
	var logs bytes.Buffer
	f, err := NewField(`
		function force(x, y, z, mass) {
			if (x > 100) { throw new Error("outside"); }
			return [0, 1, 0];
		}
	`, zerolog.New(&logs))
	require.NoError(t, err)

	assert.Equal(t, mgl64.Vec3{0, 1, 0}, f.Force(mgl64.Vec3{50, 0, 0}, 1))
	assert.Empty(t, logs.String())

	assert.Equal(t, mgl64.Vec3{}, f.Force(mgl64.Vec3{150, 0, 0}, 1))
	assert.Equal(t, mgl64.Vec3{}, f.Force(mgl64.Vec3{200, 0, 0}, 1))
	require.Error(t, f.Err())
	assert.Contains(t, f.Err().Error(), "outside")

	out := logs.String()
	assert.Equal(t, 1, strings.Count(out, "field script failed"))
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "outside")
	assert.Contains(t, out, `"x":150`)
}

func TestField_DrivesPrediction(t *testing.T) {
	f, err := NewField(`function force(x, y, z, mass) { return [0, -9.81 * mass, 0]; }`, zerolog.Nop())
	require.NoError(t, err)

	scripted, err := physics.PredictPath(mgl64.Vec3{}, mgl64.Vec3{5, 5, 0}, 2, 20, 0.05, 100, f)
	require.NoError(t, err)
	native, err := physics.PredictPath(mgl64.Vec3{}, mgl64.Vec3{5, 5, 0}, 2, 20, 0.05, 100,
		physics.ConstantField{Value: mgl64.Vec3{0, -9.81 * 2, 0}})
	require.NoError(t, err)

	assert.Equal(t, native, scripted)
}
