package gen

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/wippyai/introspect/errors"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo

// Load type-checks the single package matched by pattern, relative to dir,
// and builds its model.
func Load(ctx context.Context, dir, pattern string) (*Package, error) {
	cfg := &packages.Config{
		Mode:    loadMode,
		Context: ctx,
		Dir:     dir,
		Tests:   false,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "loading "+pattern)
	}
	if len(pkgs) != 1 {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
			Detail("pattern %q matched %d packages, want 1", pattern, len(pkgs)).
			Build()
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		msgs := make([]string, len(pkg.Errors))
		for i, e := range pkg.Errors {
			msgs[i] = e.Error()
		}
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
			Path(pkg.PkgPath).
			Detail("%s", strings.Join(msgs, "; ")).
			Build()
	}
	Logger().Debug("loaded package",
		zap.String("path", pkg.PkgPath),
		zap.Int("files", len(pkg.Syntax)))

	out, err := Build(pkg.Fset, pkg.Syntax, pkg.Types, pkg.TypesInfo)
	if err != nil {
		return nil, err
	}
	if len(pkg.GoFiles) > 0 {
		out.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	return out, nil
}
