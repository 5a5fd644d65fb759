package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/configuration"
)

// Auth resolves the acting user for API routes. This is a single-user app:
// when auth is not required the fixed owner id is assumed, and a bearer token
// is only validated when one is presented. With auth required a valid token
// is mandatory.
func Auth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var res model.Res
		res.ResponseCode = "401"
		res.ResponseMessage = "Unauthorized"

		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			if configuration.C.App.AuthRequired {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
				return
			}
			ctx.Set("user_id", model.DefaultUserID)
			ctx.Next()
			return
		}

		auth := strings.Split(authorization, "Bearer ")
		if len(auth) != 2 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		claims, token, err := getClaims(auth[1], configuration.C.App.SecretKey)
		if err != nil || !token.Valid {
			res.ResponseMessage = describeTokenError(err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		userID := model.DefaultUserID
		if sub, ok := claims["sub"].(string); ok && sub != "" {
			userID = sub
		}
		ctx.Set("user_id", userID)
		ctx.Next()
	}
}

func getClaims(tokenString, secretKey string) (jwt.MapClaims, *jwt.Token, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
	)
	return claims, token, err
}

func describeTokenError(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "That's not even a token"
		}
		if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return "Timing is everything"
		}
		return fmt.Sprintf("Couldn't handle this token:%v", err)
	}
	return "Unauthorized"
}
