package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mycampushub/consulting-sub007/internal/config"
	"github.com/mycampushub/consulting-sub007/internal/database"
	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type TenantData struct {
	Name      string `yaml:"name"`
	Subdomain string `yaml:"subdomain"`
	Timezone  string `yaml:"timezone"`
}

type UserData struct {
	TenantSubdomain string `yaml:"tenant_subdomain"`
	FirstName       string `yaml:"first_name"`
	LastName        string `yaml:"last_name"`
	Email           string `yaml:"email"`
	Password        string `yaml:"password"`
	Role            string `yaml:"role"`
	IsAvailable     *bool  `yaml:"is_available,omitempty"`
}

type AssignmentGroupData struct {
	TenantSubdomain string   `yaml:"tenant_subdomain"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Strategy        string   `yaml:"strategy"`
	SkipUnavailable bool     `yaml:"skip_unavailable"`
	ResetDaily      bool     `yaml:"reset_daily"`
	MemberEmails    []string `yaml:"member_emails"`
}

type CampaignData struct {
	TenantSubdomain string `yaml:"tenant_subdomain"`
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Status          string `yaml:"status"`
}

// File structures
type TenantsFile struct {
	Tenants []TenantData `yaml:"tenants"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type AssignmentGroupsFile struct {
	AssignmentGroups []AssignmentGroupData `yaml:"assignment_groups"`
}

type CampaignsFile struct {
	Campaigns []CampaignData `yaml:"campaigns"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	var tenantsFile TenantsFile
	if err := readYAML(filepath.Join(dataDir, "tenants.yaml"), &tenantsFile); err != nil {
		return fmt.Errorf("failed to load tenants: %w", err)
	}

	var usersFile UsersFile
	if err := readYAML(filepath.Join(dataDir, "users.yaml"), &usersFile); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	var groupsFile AssignmentGroupsFile
	if err := readYAML(filepath.Join(dataDir, "assignment_groups.yaml"), &groupsFile); err != nil {
		return fmt.Errorf("failed to load assignment groups: %w", err)
	}

	var campaignsFile CampaignsFile
	if err := readYAML(filepath.Join(dataDir, "campaigns.yaml"), &campaignsFile); err != nil {
		return fmt.Errorf("failed to load campaigns: %w", err)
	}

	// Create tenants first
	tenantMap := make(map[string]*models.Tenant)
	tenantCreated := 0
	for _, tenantData := range tenantsFile.Tenants {
		tenant, created, err := createTenant(db, tenantData)
		if err != nil {
			return fmt.Errorf("failed to create tenant %s: %w", tenantData.Subdomain, err)
		}
		tenantMap[tenantData.Subdomain] = tenant
		if created {
			tenantCreated++
		}
	}
	log.Printf("Tenants: %d created, %d total", tenantCreated, len(tenantsFile.Tenants))

	// Create users, keyed by tenant subdomain + email for group membership
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range usersFile.Users {
		user, created, err := createUser(db, userData, tenantMap)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		userMap[userData.TenantSubdomain+"/"+userData.Email] = user
		if created {
			userCreated++
		}
	}
	log.Printf("Users: %d created, %d total", userCreated, len(usersFile.Users))

	// Create assignment groups, resolving member emails to user ids
	groupCreated := 0
	for _, groupData := range groupsFile.AssignmentGroups {
		_, created, err := createAssignmentGroup(db, groupData, tenantMap, userMap)
		if err != nil {
			return fmt.Errorf("failed to create assignment group %s: %w", groupData.Name, err)
		}
		if created {
			groupCreated++
		}
	}
	log.Printf("Assignment groups: %d created, %d total", groupCreated, len(groupsFile.AssignmentGroups))

	// Create campaigns
	campaignCreated := 0
	for _, campaignData := range campaignsFile.Campaigns {
		_, created, err := createCampaign(db, campaignData, tenantMap)
		if err != nil {
			log.Printf("Warning: failed to create campaign %s: %v", campaignData.Name, err)
			continue
		}
		if created {
			campaignCreated++
		}
	}
	log.Printf("Campaigns: %d created, %d total", campaignCreated, len(campaignsFile.Campaigns))

	return nil
}

func readYAML(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Skipping %s: file not found", path)
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, target)
}

func createTenant(db *gorm.DB, data TenantData) (*models.Tenant, bool, error) {
	var existing models.Tenant
	err := db.First(&existing, "subdomain = ?", data.Subdomain).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	timezone := data.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	tenant := &models.Tenant{
		Name:      data.Name,
		Subdomain: data.Subdomain,
		Timezone:  timezone,
		IsActive:  true,
	}
	if err := db.Create(tenant).Error; err != nil {
		return nil, false, err
	}
	return tenant, true, nil
}

func createUser(db *gorm.DB, data UserData, tenantMap map[string]*models.Tenant) (*models.User, bool, error) {
	tenant, ok := tenantMap[data.TenantSubdomain]
	if !ok {
		return nil, false, fmt.Errorf("unknown tenant subdomain %q", data.TenantSubdomain)
	}

	var existing models.User
	err := db.First(&existing, "tenant_id = ? AND email = ?", tenant.ID, data.Email).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.UserRole(data.Role)
	if !role.IsValid() {
		role = models.RoleAgent
	}
	available := true
	if data.IsAvailable != nil {
		available = *data.IsAvailable
	}

	user := &models.User{
		TenantID:     tenant.ID,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		IsAvailable:  available,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func createAssignmentGroup(db *gorm.DB, data AssignmentGroupData, tenantMap map[string]*models.Tenant, userMap map[string]*models.User) (*models.AssignmentGroup, bool, error) {
	tenant, ok := tenantMap[data.TenantSubdomain]
	if !ok {
		return nil, false, fmt.Errorf("unknown tenant subdomain %q", data.TenantSubdomain)
	}

	var existing models.AssignmentGroup
	err := db.First(&existing, "tenant_id = ? AND name = ?", tenant.ID, data.Name).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	memberOrder := make(models.UUIDSlice, 0, len(data.MemberEmails))
	for _, email := range data.MemberEmails {
		user, ok := userMap[data.TenantSubdomain+"/"+email]
		if !ok {
			return nil, false, fmt.Errorf("member %q is not a seeded user of tenant %q", email, data.TenantSubdomain)
		}
		memberOrder = append(memberOrder, user.ID)
	}

	strategy := models.AssignmentStrategy(data.Strategy)
	if !strategy.IsValid() {
		strategy = models.StrategySequential
	}

	group := &models.AssignmentGroup{
		TenantID:        tenant.ID,
		Name:            data.Name,
		Description:     data.Description,
		Strategy:        strategy,
		SkipUnavailable: data.SkipUnavailable,
		ResetDaily:      data.ResetDaily,
		MemberOrder:     memberOrder,
		CurrentPosition: 0,
		IsActive:        true,
	}
	if err := db.Create(group).Error; err != nil {
		return nil, false, err
	}
	return group, true, nil
}

func createCampaign(db *gorm.DB, data CampaignData, tenantMap map[string]*models.Tenant) (*models.Campaign, bool, error) {
	tenant, ok := tenantMap[data.TenantSubdomain]
	if !ok {
		return nil, false, fmt.Errorf("unknown tenant subdomain %q", data.TenantSubdomain)
	}

	var existing models.Campaign
	err := db.First(&existing, "tenant_id = ? AND name = ?", tenant.ID, data.Name).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	status := models.CampaignStatus(data.Status)
	if !status.IsValid() {
		status = models.CampaignStatusDraft
	}

	campaign := &models.Campaign{
		TenantID:    tenant.ID,
		Name:        data.Name,
		Description: data.Description,
		Status:      status,
	}
	if err := db.Create(campaign).Error; err != nil {
		return nil, false, err
	}
	return campaign, true, nil
}
