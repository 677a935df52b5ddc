package ldtk

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/levels"
)

// scriptResult is the global a field script assigns its value to.
const scriptResult = "result"

// FromScript evaluates a tengo script against the instance and hands the
// value it assigns to `result` to apply. The script sees `identifier`, `iid`,
// `px`, `grid`, `width`, `height`, `tags` and the decoded custom `fields`.
// Numbers come back as int64 or float64. The script is compiled once; compile
// and runtime errors are logged and leave the bundle untouched.
//
//	ldtk.FromScript(`result = fields.hp * 10`, func(c *Crate, v any) { ... })
func FromScript[B any](src string, apply func(b *B, v any)) EntityField[B] {
	compiled, compileErr := compileFieldScript(src)
	return func(b *B, ctx *EntityContext) {
		if ctx == nil || ctx.Instance == nil {
			return
		}
		if compileErr != nil {
			ctx.logger().Warn("ldtk: compile field script", append(ctx.instanceFields(), zap.Error(compileErr))...)
			return
		}
		v, err := runFieldScript(compiled.Clone(), ctx.Instance)
		if err != nil {
			ctx.logger().Warn("ldtk: run field script", append(ctx.instanceFields(), zap.Error(err))...)
			return
		}
		if v == nil {
			return
		}
		apply(b, v)
	}
}

var scriptGlobals = []string{"identifier", "iid", "px", "grid", "width", "height", "tags", "fields", scriptResult}

func compileFieldScript(src string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(src))
	for _, name := range scriptGlobals {
		if err := script.Add(name, nil); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ldtk: compile script: %w", err)
	}
	return compiled, nil
}

func runFieldScript(c *tengo.Compiled, inst *levels.EntityInstance) (any, error) {
	tags := make([]any, len(inst.Tags))
	for i, t := range inst.Tags {
		tags[i] = t
	}
	globals := map[string]any{
		"identifier": inst.Identifier,
		"iid":        inst.Iid.String(),
		"px":         []any{inst.Px[0], inst.Px[1]},
		"grid":       []any{inst.Grid[0], inst.Grid[1]},
		"width":      inst.Width,
		"height":     inst.Height,
		"tags":       tags,
		"fields":     inst.FieldValues(),
	}
	for name, v := range globals {
		if err := c.Set(name, v); err != nil {
			return nil, fmt.Errorf("ldtk: set script global %s: %w", name, err)
		}
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("ldtk: run script: %w", err)
	}
	return c.Get(scriptResult).Value(), nil
}
