package plan_fx

import (
	"go.uber.org/fx"

	"gymflow/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewPlanController)
