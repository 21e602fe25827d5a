package auth

import (
	"github.com/casbin/casbin/v2"
)

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService loads the route-authorization model and policy from
// files. The portal holds no database, so policies live next to the
// rest of the deployment config.
func NewCasbinService(modelPath, policyPath string) (*CasbinService, error) {
	E, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}
