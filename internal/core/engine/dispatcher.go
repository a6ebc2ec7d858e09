package engine

import (
	"context"
	"fmt"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/namelens/handlescan/internal/core"
	"github.com/namelens/handlescan/internal/core/checker"
)

// Dispatcher routes one query to the matching capability of one platform checker.
//
// It is the single place where checker errors become Failed responses.
type Dispatcher struct {
	Registry *checker.Registry
	Logger   *logging.Logger
}

// Dispatch runs the query against the platform. It returns nil when the
// platform has no capability for the query's shape.
func (d *Dispatcher) Dispatch(ctx context.Context, query string, platform core.Platform) (response *core.Response) {
	c, ok := d.Registry.Checker(platform)
	if !ok {
		return nil
	}

	var probe func(context.Context, string) (*core.Response, error)
	switch core.KindOfQuery(query) {
	case core.QueryEmail:
		if ec, ok := c.(checker.EmailChecker); ok {
			probe = ec.CheckEmail
		}
	default:
		if uc, ok := c.(checker.UsernameChecker); ok {
			probe = uc.CheckUsername
		}
	}
	if probe == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			d.warn("checker panicked", platform, query, zap.Any("panic", r))
			response = core.Failed(platform, query, core.FailureMessage(core.NewError(core.ErrorKindQuery, fmt.Sprint(r))))
		}
	}()

	result, err := probe(ctx, query)
	switch {
	case err != nil:
		d.debug("check failed", platform, query, zap.String("kind", string(core.KindOf(err))), zap.Error(err))
		return core.Failed(platform, query, core.FailureMessage(err))
	case result == nil:
		d.warn("checker returned no result", platform, query)
		return core.Failed(platform, query, core.FailureMessage(core.NewError(core.ErrorKindQuery, core.NoResultMessage)))
	default:
		return result
	}
}

func (d *Dispatcher) debug(msg string, platform core.Platform, query string, fields ...zap.Field) {
	if d.Logger == nil {
		return
	}
	d.Logger.Debug(msg, append([]zap.Field{zap.String("platform", string(platform)), zap.String("query", query)}, fields...)...)
}

func (d *Dispatcher) warn(msg string, platform core.Platform, query string, fields ...zap.Field) {
	if d.Logger == nil {
		return
	}
	d.Logger.Warn(msg, append([]zap.Field{zap.String("platform", string(platform)), zap.String("query", query)}, fields...)...)
}
