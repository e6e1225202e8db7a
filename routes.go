package main

import (
	"fmt"
	"regexp"
	"sync"

	"finance-analyzer/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	colorRE    = regexp.MustCompile(`^#[A-Fa-f0-9]{6}$`)
	currencyRE = regexp.MustCompile(`^[A-Z]{3,10}$`)

	validatorsOnce sync.Once
)

// registerValidators adds the custom binding tags used by the request types.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		for tag, re := range map[string]*regexp.Regexp{"rgbcolor": colorRE, "currency": currencyRE} {
			if err := v.RegisterValidation(tag, matches(re)); err != nil {
				panic(fmt.Sprintf("register %s validator: %v", tag, err))
			}
		}
	})
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func setupRoutes(r *gin.Engine, a *app) {
	registerValidators()

	r.Use(a.gateway.Middleware())

	r.GET("/", rootHandler)
	r.GET("/health", a.healthHandler)

	api := r.Group(a.cfg.APIPrefix)
	api.GET("/public/ping", pingHandler)
	api.POST("/auth/login", a.loginHandler)
	api.POST("/auth/signup", a.signupHandler)

	authGroup := api.Group("")
	authGroup.Use(auth.RequireIdentity())

	authGroup.GET("/categories", a.listCategoriesHandler)
	authGroup.POST("/category/custom", a.createCategoryHandler)
	authGroup.GET("/category/:id", a.getCategoryHandler)
	authGroup.PUT("/category/:id", a.updateCategoryHandler)
	authGroup.DELETE("/category/:id", a.deleteCategoryHandler)

	authGroup.GET("/transactions", a.listTransactionsHandler)
	authGroup.GET("/transactions/summary", a.summaryHandler)
	authGroup.POST("/transaction", a.createTransactionHandler)
	authGroup.GET("/transaction/:id", a.getTransactionHandler)
	authGroup.PUT("/transaction/:id", a.updateTransactionHandler)
	authGroup.DELETE("/transaction/:id", a.deleteTransactionHandler)

	authGroup.POST("/files/upload", a.uploadFileHandler)
	authGroup.GET("/files", a.listUploadsHandler)
	authGroup.GET("/files/:id", a.getUploadHandler)

	authGroup.GET("/user/profile", a.getProfileHandler)
	authGroup.PUT("/user/profile", a.updateProfileHandler)
	authGroup.PUT("/user/password", a.changePasswordHandler)
	authGroup.DELETE("/user", a.deleteUserHandler)
}
