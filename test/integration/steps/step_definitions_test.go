//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yosan-kanri/backend/internal/application/usecase/auth"
	"github.com/yosan-kanri/backend/internal/application/usecase/classification"
	"github.com/yosan-kanri/backend/internal/application/usecase/payment"
	"github.com/yosan-kanri/backend/internal/application/usecase/project"
	"github.com/yosan-kanri/backend/internal/application/usecase/user"
	"github.com/yosan-kanri/backend/internal/application/usecase/workitem"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	"github.com/yosan-kanri/backend/internal/infra/server/router"
	"github.com/yosan-kanri/backend/internal/integration/adapters"
	"github.com/yosan-kanri/backend/internal/integration/email"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/controller"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/middleware"
	"github.com/yosan-kanri/backend/internal/integration/persistence"
	"github.com/yosan-kanri/backend/internal/integration/persistence/model"
	"github.com/yosan-kanri/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri               string
	headers           map[string]string
	client            *http.Client
	response          *response
	db                *mock.Db
	serverPort        int
	accessToken       string
	refreshToken      string
	resetToken        string
	expiredToken      string
	currentUserID     uuid.UUID
	currentProjectID  uuid.UUID
	currentWorkItemID uuid.UUID
	currentPaymentID  uuid.UUID
	contractPaymentID uuid.UUID
}

type response struct {
	status int
	body   any
	err    error
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("yosan_kanri", map[string]any{
			"users":                 &model.UserModel{},
			"refresh_tokens":        &model.RefreshTokenModel{},
			"password_reset_tokens": &model.PasswordResetTokenModel{},
			"projects":              &model.ProjectModel{},
			"work_items":            &model.WorkItemModel{},
			"payments":              &model.PaymentModel{},
			"email_queue":           &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return nil, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with username "([^"]*)"$`, test.aUserExistsWithUsername)
	ctx.Given(`^a user exists with username "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithUsernameAndPassword)
	ctx.Given(`^an admin user exists with username "([^"]*)"$`, test.anAdminUserExistsWithUsername)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)
	ctx.Given(`^an expired password reset token exists$`, test.anExpiredPasswordResetTokenExists)

	// Project setup steps
	ctx.Given(`^a project exists with code "([^"]*)" and name "([^"]*)"$`, test.aProjectExistsWithCodeAndName)
	ctx.Given(`^a project exists with code "([^"]*)" contract (\d+) and budget (\d+)$`, test.aProjectExistsWithCodeContractAndBudget)
	ctx.Given(`^a project exists with code "([^"]*)" owned by "([^"]*)"$`, test.aProjectExistsWithCodeOwnedBy)
	ctx.Given(`^the project target management rate is "([^"]*)"$`, test.theProjectTargetManagementRateIs)

	// Work item setup steps
	ctx.Given(`^a work item exists with code "([^"]*)" and budget (\d+)$`, test.aWorkItemExistsWithCodeAndBudget)

	// Payment setup steps
	ctx.Given(`^a contract payment of (\d+) exists for contractor "([^"]*)"$`, test.aContractPaymentExistsForContractor)
	ctx.Given(`^a progress payment of (\d+) percent exists for contractor "([^"]*)"$`, test.aProgressPaymentExistsForContractor)
	ctx.Given(`^a non-contract payment of (\d+) exists$`, test.aNonContractPaymentExists)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the work item remaining amount should be (\d+)$`, test.theWorkItemRemainingAmountShouldBe)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.expiredToken = ""
	t.currentUserID = uuid.Nil
	t.currentProjectID = uuid.Nil
	t.currentWorkItemID = uuid.Nil
	t.currentPaymentID = uuid.Nil
	t.contractPaymentID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
			projectRepo := persistence.NewProjectRepository(testDB.DbConn)
			workItemRepo := persistence.NewWorkItemRepository(testDB.DbConn)
			paymentRepo := persistence.NewPaymentRepository(testDB.DbConn)
			emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)

			// Create adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
			resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
			classifierService := adapters.NewGeminiService("")
			emailService := email.NewService(emailQueueRepo, "http://localhost:3000")

			// Create auth use cases
			registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
			logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
			forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, "http://localhost:3000")
			resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

			// Create user use cases
			listUsersUseCase := user.NewListUsersUseCase(userRepo)
			getUserUseCase := user.NewGetUserUseCase(userRepo)
			updateUserUseCase := user.NewUpdateUserUseCase(userRepo, passwordService)
			deleteUserUseCase := user.NewDeleteUserUseCase(userRepo, tokenService)

			// Create project use cases
			createProjectUseCase := project.NewCreateProjectUseCase(projectRepo)
			listProjectsUseCase := project.NewListProjectsUseCase(projectRepo)
			getProjectUseCase := project.NewGetProjectUseCase(projectRepo, workItemRepo, paymentRepo)
			updateProjectUseCase := project.NewUpdateProjectUseCase(projectRepo)
			deleteProjectUseCase := project.NewDeleteProjectUseCase(projectRepo)
			rollupUseCase := project.NewGetRollupUseCase(projectRepo, workItemRepo, paymentRepo)
			managementCostUseCase := project.NewGetManagementCostUseCase(projectRepo)

			// Create work item use cases
			createWorkItemUseCase := workitem.NewCreateWorkItemUseCase(workItemRepo, projectRepo)
			listWorkItemsUseCase := workitem.NewListWorkItemsUseCase(workItemRepo, projectRepo)
			getWorkItemUseCase := workitem.NewGetWorkItemUseCase(workItemRepo, projectRepo, paymentRepo)
			updateWorkItemUseCase := workitem.NewUpdateWorkItemUseCase(workItemRepo, projectRepo)
			deleteWorkItemUseCase := workitem.NewDeleteWorkItemUseCase(workItemRepo, projectRepo)

			// Create payment use cases
			recordPaymentUseCase := payment.NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)
			listPaymentsUseCase := payment.NewListPaymentsUseCase(paymentRepo, workItemRepo, projectRepo)
			updatePaymentUseCase := payment.NewUpdatePaymentUseCase(paymentRepo, workItemRepo, projectRepo)
			deletePaymentUseCase := payment.NewDeletePaymentUseCase(paymentRepo, workItemRepo, projectRepo)

			// Create classification use cases
			suggestWorkCodeUseCase := classification.NewSuggestWorkCodeUseCase(classifierService)

			// Create controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})

			authController := controller.NewAuthController(
				registerUseCase,
				loginUseCase,
				refreshTokenUseCase,
				logoutUseCase,
				forgotPasswordUseCase,
				resetPasswordUseCase,
			)

			userController := controller.NewUserController(
				listUsersUseCase,
				getUserUseCase,
				updateUserUseCase,
				deleteUserUseCase,
			)

			projectController := controller.NewProjectController(
				createProjectUseCase,
				listProjectsUseCase,
				getProjectUseCase,
				updateProjectUseCase,
				deleteProjectUseCase,
				rollupUseCase,
				managementCostUseCase,
			)

			workItemController := controller.NewWorkItemController(
				createWorkItemUseCase,
				listWorkItemsUseCase,
				getWorkItemUseCase,
				updateWorkItemUseCase,
				deleteWorkItemUseCase,
			)

			paymentController := controller.NewPaymentController(
				recordPaymentUseCase,
				listPaymentsUseCase,
				updatePaymentUseCase,
				deletePaymentUseCase,
			)

			classifierController := controller.NewClassifierController(suggestWorkCodeUseCase)

			// Create middleware. The limit is high enough to never trip in
			// scenarios; the middleware itself is skipped under ENV=test.
			loginRateLimiter := middleware.NewRedisRateLimiter(mock.NewRedis(), 1000, 1*time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				userController,
				projectController,
				workItemController,
				paymentController,
				classifierController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{
				Addr:    addr,
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExistsWithUsername(username string) error {
	return t.createUser(username, "DefaultPass123!", false)
}

func (t *testContext) aUserExistsWithUsernameAndPassword(username, password string) error {
	return t.createUser(username, password, false)
}

func (t *testContext) anAdminUserExistsWithUsername(username string) error {
	return t.createUser(username, "DefaultPass123!", true)
}

func (t *testContext) createUser(username, password string, isAdmin bool) error {
	var existing model.UserModel
	if err := t.db.DbConn.Where("username = ?", username).First(&existing).Error; err == nil {
		t.currentUserID = existing.ID
		return nil
	}

	userID := uuid.New()
	t.currentUserID = userID

	userModel := &model.UserModel{
		ID:           userID,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hashPassword(password),
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	result := t.db.DbConn.Create(userModel)
	return result.Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	return t.issueTokensFor(t.currentUserID, "test@example.com")
}

// iAmLoggedInAs switches the current logged in user to the specified username.
func (t *testContext) iAmLoggedInAs(username string) error {
	if err := t.aUserExistsWithUsername(username); err != nil {
		return err
	}

	var userModel model.UserModel
	if err := t.db.DbConn.Where("username = ?", username).First(&userModel).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	t.currentUserID = userModel.ID
	return t.issueTokensFor(userModel.ID, userModel.Email)
}

func (t *testContext) issueTokensFor(userID uuid.UUID, userEmail string) error {
	now := time.Now().UTC()

	accessToken, err := t.signToken(userID, userEmail, "access", now, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessToken

	refreshToken, err := t.signToken(userID, userEmail, "refresh", now, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshToken

	// Make sure the stored refresh token matches the issued one so that
	// refresh and logout flows see it as valid.
	var existing model.RefreshTokenModel
	if err := t.db.DbConn.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		existing.Token = t.refreshToken
		existing.Invalidated = false
		existing.ExpiresAt = now.Add(7 * 24 * time.Hour)
		return t.db.DbConn.Save(&existing).Error
	}

	refreshTokenModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      userID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	result := t.db.DbConn.Create(refreshTokenModel)
	return result.Error
}

func (t *testContext) signToken(userID uuid.UUID, userEmail, tokenType string, now time.Time, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      userEmail,
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(duration)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "yosan-kanri",
		"sub":        userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) aPasswordResetTokenExistsFor(userEmail string) error {
	t.resetToken = fmt.Sprintf("test-reset-token-%s", uuid.New().String())

	var userModel model.UserModel
	if err := t.db.DbConn.Where("email = ?", userEmail).First(&userModel).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.resetToken,
		UserID:    userModel.ID,
		Email:     userEmail,
		Used:      false,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		CreatedAt: time.Now(),
	}

	result := t.db.DbConn.Create(resetTokenModel)
	return result.Error
}

func (t *testContext) anExpiredPasswordResetTokenExists() error {
	t.expiredToken = fmt.Sprintf("expired-reset-token-%s", uuid.New().String())

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.expiredToken,
		UserID:    uuid.New(),
		Email:     "expired@example.com",
		Used:      false,
		ExpiresAt: time.Now().Add(-1 * time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}

	result := t.db.DbConn.Create(resetTokenModel)
	return result.Error
}

// aProjectExistsWithCodeAndName seeds a project owned by the current user
// with default amounts.
func (t *testContext) aProjectExistsWithCodeAndName(code, name string) error {
	return t.createProject(code, name, 50_000_000, 40_000_000, t.currentUserID)
}

func (t *testContext) aProjectExistsWithCodeContractAndBudget(code string, contract, budget int) error {
	return t.createProject(code, "テスト工事 "+code, int64(contract), int64(budget), t.currentUserID)
}

func (t *testContext) aProjectExistsWithCodeOwnedBy(code, username string) error {
	var owner model.UserModel
	if err := t.db.DbConn.Where("username = ?", username).First(&owner).Error; err != nil {
		// Seed the owner without touching the logged-in user.
		owner = model.UserModel{
			ID:           uuid.New(),
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: hashPassword("DefaultPass123!"),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := t.db.DbConn.Create(&owner).Error; err != nil {
			return err
		}
	}
	return t.createProject(code, "テスト工事 "+code, 50_000_000, 40_000_000, owner.ID)
}

func (t *testContext) createProject(code, name string, contract, budget int64, ownerID uuid.UUID) error {
	projectID := uuid.New()
	t.currentProjectID = projectID

	now := time.Now().UTC()
	projectModel := &model.ProjectModel{
		ID:                   projectID,
		UserID:               ownerID,
		Code:                 code,
		Name:                 name,
		ContractAmount:       contract,
		BudgetAmount:         budget,
		TargetManagementRate: decimal.Zero,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	result := t.db.DbConn.Create(projectModel)
	return result.Error
}

func (t *testContext) theProjectTargetManagementRateIs(rate string) error {
	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", rate, err)
	}
	return t.db.DbConn.Model(&model.ProjectModel{}).
		Where("id = ?", t.currentProjectID).
		Update("target_management_rate", parsed).Error
}

func (t *testContext) aWorkItemExistsWithCodeAndBudget(code string, budget int) error {
	workItemID := uuid.New()
	t.currentWorkItemID = workItemID

	name := code
	if catalogName, ok := entity.ConstructionTypeName(code); ok {
		name = catalogName
	}

	now := time.Now().UTC()
	workItemModel := &model.WorkItemModel{
		ID:              workItemID,
		ProjectID:       t.currentProjectID,
		WorkCode:        code,
		WorkName:        name,
		BudgetAmount:    int64(budget),
		RemainingAmount: int64(budget),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result := t.db.DbConn.Create(workItemModel)
	return result.Error
}

func (t *testContext) aContractPaymentExistsForContractor(amount int, contractor string) error {
	paymentModel, err := t.seedPayment(entity.PaymentCategoryContract, int64(amount), contractor, decimal.Zero, nil)
	if err != nil {
		return err
	}
	t.contractPaymentID = paymentModel.ID
	return nil
}

func (t *testContext) aProgressPaymentExistsForContractor(rate int, contractor string) error {
	var contractRef *uuid.UUID
	if t.contractPaymentID != uuid.Nil {
		ref := t.contractPaymentID
		contractRef = &ref
	}

	// Chain position continues from the latest seeded progress payment for
	// the same contractor and contract reference. The given percent is the
	// increment billed by this payment.
	previous := decimal.Zero
	var priorPayments []model.PaymentModel
	query := t.db.DbConn.
		Where("work_item_id = ? AND category = ? AND contractor = ?", t.currentWorkItemID, string(entity.PaymentCategoryProgress), contractor).
		Order("created_at DESC")
	if contractRef != nil {
		query = query.Where("contract_payment_id = ?", *contractRef)
	} else {
		query = query.Where("contract_payment_id IS NULL")
	}
	if err := query.Find(&priorPayments).Error; err == nil && len(priorPayments) > 0 {
		previous = priorPayments[0].CurrentProgress
	}

	progressRate := decimal.NewFromInt(int64(rate))
	amount := int64(0)
	if contractRef != nil {
		var contract model.PaymentModel
		if err := t.db.DbConn.Where("id = ?", *contractRef).First(&contract).Error; err == nil {
			amount = progressRate.
				Mul(decimal.NewFromInt(contract.Amount)).
				Div(decimal.NewFromInt(100)).
				Round(0).IntPart()
		}
	}

	paymentModel, err := t.seedPayment(entity.PaymentCategoryProgress, amount, contractor, progressRate, contractRef)
	if err != nil {
		return err
	}
	if err := t.db.DbConn.Model(paymentModel).Updates(map[string]any{
		"previous_progress": previous,
		"current_progress":  previous.Add(progressRate),
	}).Error; err != nil {
		return err
	}
	return nil
}

func (t *testContext) aNonContractPaymentExists(amount int) error {
	_, err := t.seedPayment(entity.PaymentCategoryNonContract, int64(amount), "", decimal.Zero, nil)
	return err
}

func (t *testContext) seedPayment(category entity.PaymentCategory, amount int64, contractor string, rate decimal.Decimal, contractRef *uuid.UUID) (*model.PaymentModel, error) {
	paymentID := uuid.New()
	t.currentPaymentID = paymentID

	now := time.Now().UTC()
	paymentModel := &model.PaymentModel{
		ID:                paymentID,
		WorkItemID:        t.currentWorkItemID,
		Year:              2026,
		Month:             4,
		Contractor:        contractor,
		Category:          string(category),
		Amount:            amount,
		ProgressRate:      rate,
		PreviousProgress:  decimal.Zero,
		CurrentProgress:   rate,
		ContractPaymentID: contractRef,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := t.db.DbConn.Create(paymentModel).Error; err != nil {
		return nil, err
	}
	if err := t.recomputeSeededRemaining(); err != nil {
		return nil, err
	}
	return paymentModel, nil
}

// recomputeSeededRemaining keeps the seeded work item consistent with its
// payments, mirroring what the record payment flow does transactionally.
func (t *testContext) recomputeSeededRemaining() error {
	var workItemModel model.WorkItemModel
	if err := t.db.DbConn.Where("id = ?", t.currentWorkItemID).First(&workItemModel).Error; err != nil {
		return err
	}

	var paymentModels []model.PaymentModel
	if err := t.db.DbConn.Where("work_item_id = ?", t.currentWorkItemID).Find(&paymentModels).Error; err != nil {
		return err
	}

	payments := make([]*entity.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentModels[i].ToEntity())
	}

	remaining := entity.RemainingAmount(workItemModel.BudgetAmount, payments)
	return t.db.DbConn.Model(&workItemModel).Update("remaining_amount", remaining).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		content := t.replacePlaceholders(body.Content)
		payload = []byte(content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{expired_reset_token}}", t.expiredToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	content = strings.ReplaceAll(content, "{{project_id}}", t.currentProjectID.String())
	content = strings.ReplaceAll(content, "{{work_item_id}}", t.currentWorkItemID.String())
	content = strings.ReplaceAll(content, "{{payment_id}}", t.currentPaymentID.String())
	content = strings.ReplaceAll(content, "{{contract_payment_id}}", t.contractPaymentID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
		t.captureIdentifiers(responseBody)
	}

	return nil
}

// captureIdentifiers records ids from create responses so that later steps
// can reference them through placeholders.
func (t *testContext) captureIdentifiers(body map[string]any) {
	if idStr, ok := body["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			switch {
			case hasKey(body, "work_code"):
				t.currentWorkItemID = id
			case hasKey(body, "contract_amount"):
				t.currentProjectID = id
			}
		}
	}

	// Record and update payment responses wrap the payment object.
	if paymentBody, ok := body["payment"].(map[string]any); ok {
		if idStr, ok := paymentBody["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.currentPaymentID = id
				if category, ok := paymentBody["category"].(string); ok && category == "contract" {
					t.contractPaymentID = id
				}
			}
		}
	}
}

func hasKey(body map[string]any, key string) bool {
	_, ok := body[key]
	return ok
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entityModel, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entityModel).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if entityModel, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entityModel).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

// theWorkItemRemainingAmountShouldBe asserts the persisted remaining amount
// of the current work item, independent of any response body.
func (t *testContext) theWorkItemRemainingAmountShouldBe(expected int) error {
	var workItemModel model.WorkItemModel
	if err := t.db.DbConn.Where("id = ?", t.currentWorkItemID).First(&workItemModel).Error; err != nil {
		return fmt.Errorf("work item not found: %w", err)
	}
	if workItemModel.RemainingAmount != int64(expected) {
		return fmt.Errorf("expected remaining amount %d, got %d", expected, workItemModel.RemainingAmount)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
