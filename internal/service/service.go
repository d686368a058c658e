package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

type contextKey string

const (
	KeyJWTSecret                    = "JWT_SECRET"
	KeyRelayName                    = "relay_name"
	KeyCtxRelayClaims    contextKey = "RelayClaims"
	DefaultLeaderboardSz            = 10
	MaxLeaderboardSz                = 50
)

var (
	validate *validator.Validate
)

func InitializeServices() {
	validate = initValidator() // used for validating struct fields
}

func initValidator() *validator.Validate {
	log.Info("initializing validator")
	validate := validator.New(validator.WithRequiredStructEnabled())

	// This makes error.Field() return "user_id" instead of "UserID"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

func GetClaimsFromContext(
	ctx context.Context,
) (claims RelayClaims, err error) {
	claimsValue := ctx.Value(KeyCtxRelayClaims)
	claims, ok := claimsValue.(RelayClaims)
	if !ok {
		err = fmt.Errorf(
			"%w, unable to parse claims to service.RelayClaims, type of claims found is %T",
			bot_errors.ErrInternal,
			claimsValue,
		)
		log.Error(err)
	}
	return
}
