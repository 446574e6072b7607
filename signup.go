package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// one signup per ip every signupInterval
const signupInterval = 10 * time.Minute

func disabledSignupsHandler(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"error":       "signups are disabled",
		"enable_auth": false,
	})
}

func (p *proxy) authFunc() gin.HandlerFunc {
	if !p.cfg.Auth.EnableAuth {
		return disabledSignupsHandler
	}

	handleError := func(c *gin.Context, status int, msg string, err error) {
		slog.Warn("signup failed", "reason", msg, "err", err)
		abortWithError(c, status, msg)
	}

	return func(c *gin.Context) {
		code := c.Query("code")
		if len(code) == 0 {
			handleError(c, http.StatusBadRequest, "got no code for signup", nil)
			return
		}

		ctx := c.Request.Context()
		token, err := p.client.ExchangeCode(ctx, code)
		if err != nil {
			handleError(c, http.StatusBadGateway, "failed to get token", err)
			return
		}

		user, err := p.client.FetchMe(ctx, token.AccessToken)
		if err != nil {
			handleError(c, http.StatusBadGateway, "failed to fetch user", err)
			return
		}

		owner := keyOwner{ID: user.ID, Username: user.Username}
		key, created, err := registerUser(p.db, owner)
		if err != nil {
			handleError(c, http.StatusInternalServerError, "failed to issue api key", err)
			return
		}

		if created {
			slog.Info("user registered", "user", owner.Username, "id", owner.ID)
			usersRegistered.Inc()
		} else {
			slog.Info("user retrieved key", "user", owner.Username, "id", owner.ID)
			keysReissued.Inc()
		}

		c.JSON(http.StatusOK, gin.H{
			"id":       owner.ID,
			"username": owner.Username,
			"key":      key,
			"created":  created,
		})
	}
}

func (p *proxy) mainPageFunc() (gin.HandlerFunc, error) {
	if !p.cfg.Auth.EnableAuth {
		return disabledSignupsHandler, nil
	}

	url, err := p.client.AuthURL()
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, url)
	}, nil
}

func (p *proxy) authRouter() (*gin.Engine, error) {
	mainPage, err := p.mainPageFunc()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/authorize", apiLimitAuth(p.signupVisitors, p.ips), p.authFunc())
	router.GET("/", mainPage)

	return router, nil
}
