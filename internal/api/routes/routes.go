package routes

import (
	"log"

	"github.com/mycampushub/consulting-sub007/internal/api/handlers"
	"github.com/mycampushub/consulting-sub007/internal/api/middleware"
	"github.com/mycampushub/consulting-sub007/internal/auth"
	"github.com/mycampushub/consulting-sub007/internal/config"
	"github.com/mycampushub/consulting-sub007/internal/repository"
	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tenantResolver adapts the tenant repository to middleware.TenantResolver
type tenantResolver struct {
	repo repository.TenantRepositoryInterface
}

func (r *tenantResolver) ResolveSubdomain(subdomain string) (uuid.UUID, bool) {
	tenant, err := r.repo.GetBySubdomain(subdomain)
	if err != nil {
		return uuid.Nil, false
	}
	return tenant.ID, true
}

func (r *tenantResolver) ResolveID(id uuid.UUID) bool {
	_, err := r.repo.GetByID(id)
	return err == nil
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	groupRepo := repository.NewAssignmentGroupRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// Initialize services
	directory := service.NewDirectoryService(userRepo, taskRepo)
	allocatorService := service.NewAllocatorService(groupRepo, assignmentRepo, tenantRepo, directory, cfg.AssignMaxRetries)
	tenantService := service.NewTenantService(tenantRepo, validator)
	userService := service.NewUserService(userRepo, validator)
	studentService := service.NewStudentService(studentRepo, validator)
	leadService := service.NewLeadService(leadRepo, taskRepo, allocatorService, validator)
	taskService := service.NewTaskService(taskRepo, allocatorService, validator)
	campaignService := service.NewCampaignService(campaignRepo, validator)
	invoiceService := service.NewInvoiceService(invoiceRepo, studentRepo, validator)
	groupService := service.NewAssignmentGroupService(groupRepo, userRepo, assignmentRepo, validator)

	// Initialize auth configuration and services
	authConfig, err := auth.LoadAuthConfig("config/auth.yaml")
	if err != nil {
		log.Printf("Warning: Failed to load auth config: %v", err)
		authConfig = &auth.AuthConfig{
			JWTSecret:    cfg.JWTSecret,
			TTLMinutes:   cfg.JWTTTLMinutes,
			RolePolicies: auth.DefaultRolePolicies(),
		}
	}

	var authHandler *auth.AuthHandler
	var authMiddleware *auth.AuthMiddleware
	authService, err := auth.NewAuthService(authConfig.JWTSecret, authConfig.TTLMinutes, userRepo)
	if err != nil {
		log.Printf("Warning: Failed to initialize auth service: %v", err)
	} else {
		authHandler = auth.NewAuthHandler(authService)
		authMiddleware = auth.NewAuthMiddleware(authService)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	userHandler := handlers.NewUserHandler(userService)
	studentHandler := handlers.NewStudentHandler(studentService)
	leadHandler := handlers.NewLeadHandler(leadService)
	taskHandler := handlers.NewTaskHandler(taskService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	groupHandler := handlers.NewAssignmentGroupHandler(groupService, allocatorService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	resolveTenant := middleware.Tenant(cfg, &tenantResolver{repo: tenantRepo})

	// Auth routes
	if authHandler != nil {
		authGroup := router.Group("/api/auth")
		{
			authGroup.POST("/login", resolveTenant, authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/validate", authMiddleware.RequireAuth(), authHandler.Validate)
		}
	}

	// Tenant administration lives outside tenant scope
	admin := router.Group("/api/v1/tenants")
	if authMiddleware != nil {
		admin.Use(authMiddleware.RequireAuth())
		if writers, ok := authConfig.WritersFor("tenants"); ok {
			admin.Use(roleGuardForWrites(authMiddleware, writers))
		}
	}
	{
		admin.GET("", tenantHandler.ListTenants)
		admin.POST("", tenantHandler.CreateTenant)
		admin.GET("/:id", tenantHandler.GetTenant)
		admin.PUT("/:id", tenantHandler.UpdateTenant)
		admin.DELETE("/:id", tenantHandler.DeleteTenant)
	}

	// API v1 routes - tenant-scoped, all endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(resolveTenant)
	if authMiddleware != nil {
		v1.Use(authMiddleware.RequireAuth())
	}

	// guardWrites applies the configured role policy to mutating routes of a
	// resource; absent a policy (or auth) writes stay open
	guardWrites := func(g *gin.RouterGroup, resource string) {
		if authMiddleware == nil {
			return
		}
		if writers, ok := authConfig.WritersFor(resource); ok {
			g.Use(roleGuardForWrites(authMiddleware, writers))
		}
	}

	{
		// User routes
		users := v1.Group("/users")
		guardWrites(users, "users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Student routes
		students := v1.Group("/students")
		{
			students.GET("", studentHandler.ListStudents)
			students.POST("", studentHandler.CreateStudent)
			students.GET("/:id", studentHandler.GetStudent)
			students.PUT("/:id", studentHandler.UpdateStudent)
			students.DELETE("/:id", studentHandler.DeleteStudent)
		}

		// Lead routes
		leads := v1.Group("/leads")
		{
			leads.GET("", leadHandler.ListLeads)
			leads.POST("", leadHandler.CreateLead)
			leads.GET("/:id", leadHandler.GetLead)
			leads.PUT("/:id", leadHandler.UpdateLead)
			leads.DELETE("/:id", leadHandler.DeleteLead)
			leads.POST("/:id/distribute", leadHandler.DistributeLead)
		}

		// Task routes
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Campaign routes
		campaigns := v1.Group("/campaigns")
		guardWrites(campaigns, "campaigns")
		{
			campaigns.GET("", campaignHandler.ListCampaigns)
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
			campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
		}

		// Invoice routes
		invoices := v1.Group("/invoices")
		guardWrites(invoices, "invoices")
		{
			invoices.GET("", invoiceHandler.ListInvoices)
			invoices.POST("", invoiceHandler.CreateInvoice)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
			invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
			invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
		}

		// Assignment group routes
		groups := v1.Group("/assignment-groups")
		guardWrites(groups, "assignment-groups")
		{
			groups.GET("", groupHandler.ListAssignmentGroups)
			groups.POST("", groupHandler.CreateAssignmentGroup)
			groups.GET("/:id", groupHandler.GetAssignmentGroup)
			groups.PUT("/:id", groupHandler.UpdateAssignmentGroup)
			groups.DELETE("/:id", groupHandler.DeleteAssignmentGroup)
			groups.POST("/:id/assign", groupHandler.Assign)
			groups.POST("/:id/reset", groupHandler.Reset)
			groups.GET("/:id/history", groupHandler.History)
		}
	}

	return router
}

// roleGuardForWrites applies a role check to mutating methods only; reads
// stay open to any authenticated user
func roleGuardForWrites(m *auth.AuthMiddleware, writers []string) gin.HandlerFunc {
	guard := m.RequireRole(writers...)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
			guard(c)
		default:
			c.Next()
		}
	}
}
