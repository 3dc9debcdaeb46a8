// Package routes registers the HTTP surface.
package routes

import (
	"context"

	"github.com/themirzaalibaig/server-ecommerce/app/controllers"
	"github.com/themirzaalibaig/server-ecommerce/app/repositories"
	"github.com/themirzaalibaig/server-ecommerce/app/services"
	"github.com/themirzaalibaig/server-ecommerce/config"
	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
	"github.com/themirzaalibaig/server-ecommerce/pkg/middleware"
	"github.com/themirzaalibaig/server-ecommerce/pkg/rbac"
	"github.com/themirzaalibaig/server-ecommerce/pkg/router"
	"github.com/themirzaalibaig/server-ecommerce/pkg/storage"
)

// resolvePrincipal looks the token's userId up in Mongo so revoked or
// deactivated accounts are rejected even while their token is unexpired.
func resolvePrincipal(users repositories.UserRepository) middleware.PrincipalResolver {
	return func(c context.Context, userID string) (*middleware.Principal, error) {
		user, err := users.FindByID(c, userID)
		if err != nil {
			if err == repositories.ErrNoDocument {
				return nil, nil
			}
			return nil, err
		}
		return &middleware.Principal{
			ID:     user.ID.Hex(),
			Role:   user.Role,
			Active: user.IsActive,
		}, nil
	}
}

func RegisterAPI(r *router.Router) {
	userRepo := repositories.NewUserRepository()
	categoryRepo := repositories.NewCategoryRepository()
	productRepo := repositories.NewProductRepository()

	authController := controllers.NewAuthController(services.NewAuthService(userRepo))
	categoryController := controllers.NewCategoryController(services.NewCategoryService(categoryRepo))
	productController := controllers.NewProductController(services.NewProductService(productRepo, categoryRepo))
	imageController := controllers.NewImageController(services.NewImageService(storage.Default()))

	authed := middleware.Auth(resolvePrincipal(userRepo))
	adminOnly := rbac.HasRole(rbac.RoleAdmin)
	authLimiter := middleware.RateLimit(middleware.AuthPolicy)
	createLimiter := middleware.RateLimit(middleware.CreatePolicy)
	uploadLimiter := middleware.RateLimit(middleware.UploadPolicy)
	adminLimiter := middleware.RateLimit(middleware.AdminPolicy)

	api := r.Group("/api/" + config.APIVersion())

	api.Post("/signup", "auth.signup", ctx.Wrap(authController.Signup), authLimiter)
	api.Post("/login", "auth.login", ctx.Wrap(authController.Login), authLimiter)

	api.Post("/image/upload", "images.upload", ctx.Wrap(imageController.Upload), uploadLimiter, authed)
	api.Post("/image/delete", "images.delete", ctx.Wrap(imageController.Delete), authed)

	categories := api.Group("/categories")
	categories.Get("", "categories.index", ctx.Wrap(categoryController.Index))
	categories.Get("/{id}", "categories.show", ctx.Wrap(categoryController.Show))
	categories.Post("", "categories.store", ctx.Wrap(categoryController.Store),
		createLimiter, authed, adminOnly)
	categories.Put("/{id}", "categories.update", ctx.Wrap(categoryController.Update),
		adminLimiter, authed, adminOnly)
	categories.Delete("/{id}", "categories.destroy", ctx.Wrap(categoryController.Destroy),
		adminLimiter, authed, adminOnly)

	products := api.Group("/products")
	products.Get("", "products.index", ctx.Wrap(productController.Index))
	products.Get("/slug/{slug}", "products.showBySlug", ctx.Wrap(productController.ShowBySlug))
	products.Get("/{id}", "products.show", ctx.Wrap(productController.Show))
	products.Post("", "products.store", ctx.Wrap(productController.Store),
		createLimiter, authed)
	products.Put("/{id}", "products.update", ctx.Wrap(productController.Update),
		authed, rbac.Ownership("userId"))
	products.Delete("/{id}", "products.destroy", ctx.Wrap(productController.Destroy),
		adminLimiter, authed, adminOnly)
}
