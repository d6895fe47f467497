package utils

import (
	"go.uber.org/zap"
)

var Zlog *zap.Logger

// InitLogger sets up the process-wide zap logger. Development gets the
// human console encoder, everything else JSON.
func InitLogger(env string) {
	var err error
	if env == "production" {
		Zlog, err = zap.NewProduction()
	} else {
		Zlog, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
}
