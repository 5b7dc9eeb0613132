package services

import (
	"errors"

	"fitlog/models"
	"fitlog/status"
	"fitlog/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountService owns the relational account records.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// SignUp creates an account. Per-user documents are not pre-populated here;
// the document accessors provision them lazily on first access.
func (a *AccountService) SignUp(email, password, displayName string) (models.Account, status.Result) {
	var existing models.Account
	err := a.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return models.Account{}, status.Error(status.AlreadyExists, "email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, failure(err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.Account{}, failure(err)
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	if account.DisplayName == "" {
		account.DisplayName = utils.ExtractNameFromEmail(email)
	}
	if err := a.db.Create(&account).Error; err != nil {
		return models.Account{}, failure(err)
	}
	return account, status.OK()
}

// Login verifies credentials and issues a JWT.
func (a *AccountService) Login(email, password string) (string, models.Account, status.Result) {
	var account models.Account
	err := a.db.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", models.Account{}, status.Error(status.Forbidden, "invalid credentials")
	}
	if err != nil {
		return "", models.Account{}, failure(err)
	}

	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		return "", models.Account{}, status.Error(status.Forbidden, "invalid credentials")
	}

	token, err := utils.GenerateJWTToken(account.ID, account.Email)
	if err != nil {
		return "", models.Account{}, failure(err)
	}
	return token, account, status.OK()
}

// Profile fetches an account by ID.
func (a *AccountService) Profile(userID string) (models.Account, status.Result) {
	var account models.Account
	err := a.db.First(&account, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, status.Error(status.NotFound, "account not found")
	}
	if err != nil {
		return models.Account{}, failure(err)
	}
	return account, status.OK()
}

// UpdateProfile changes the mutable profile fields.
func (a *AccountService) UpdateProfile(userID, displayName, bio, avatarURL string) (models.Account, status.Result) {
	account, res := a.Profile(userID)
	if !res.Success {
		return models.Account{}, res
	}

	if displayName != "" {
		account.DisplayName = displayName
	}
	account.Bio = bio
	if avatarURL != "" {
		account.AvatarURL = avatarURL
	}
	if err := a.db.Save(&account).Error; err != nil {
		return models.Account{}, failure(err)
	}
	return account, status.OK()
}
