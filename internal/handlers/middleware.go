package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"canvasChat/internal/errs"
	"canvasChat/internal/models"
	"canvasChat/internal/msgs"
	"canvasChat/internal/utils"
)

func MustAuthenticateMiddleware(jwtKey []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jwtToken := ctx.GetHeader("Authorization")
		if jwtToken != "" && strings.Contains(jwtToken, "Bearer") {
			jwtToken = strings.Replace(jwtToken, "Bearer ", "", 1)
		}

		if jwtToken == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgOperationFailed,
				Errors:  []error{errs.ErrUnauthorized},
			})
			return
		}

		claims, err := utils.VerifyToken(jwtToken, jwtKey)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []error{errs.ErrUnauthorized},
			})
			return
		}

		ctx.Set("user_id", claims.ID)
		ctx.Set("user_email", claims.Email)
		ctx.Set("authenticated", true)
		ctx.Next()
	}
}
