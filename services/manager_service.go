package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/models"
	"github.com/bootheat/bootheat-server/utils"
)

// ManagerService manages the single manager account a booth has and serves
// its payout info to the customer payment page.
type ManagerService struct {
	DB *gorm.DB
}

func NewManagerService(db *gorm.DB) *ManagerService {
	return &ManagerService{DB: db}
}

// ManagerAccountPayload is the admin-facing manager shape, without
// credentials.
type ManagerAccountPayload struct {
	Username      string `json:"username"`
	AccountBank   string `json:"accountBank"`
	AccountNo     string `json:"accountNo"`
	AccountHolder string `json:"accountHolder"`
}

type AccountInfoResponse struct {
	AccountBank   string `json:"accountBank"`
	AccountNo     string `json:"accountNo"`
	AccountHolder string `json:"accountHolder"`
}

func payloadFrom(m *models.ManagerUser) *ManagerAccountPayload {
	return &ManagerAccountPayload{
		Username:      m.Username,
		AccountBank:   m.AccountBank,
		AccountNo:     m.AccountNo,
		AccountHolder: m.AccountHolder,
	}
}

func (ms *ManagerService) byBooth(boothID uint) (*models.ManagerUser, error) {
	var manager models.ManagerUser
	if err := ms.DB.Where("booth_id = ?", boothID).First(&manager).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}
	return &manager, nil
}

// GetPayload returns the booth manager's account payload.
func (ms *ManagerService) GetPayload(boothID uint) (*ManagerAccountPayload, error) {
	manager, err := ms.byBooth(boothID)
	if err != nil {
		return nil, err
	}
	return payloadFrom(manager), nil
}

// GetAccountInfo returns the payout account shown to paying customers.
func (ms *ManagerService) GetAccountInfo(boothID uint) (*AccountInfoResponse, error) {
	manager, err := ms.byBooth(boothID)
	if err != nil {
		return nil, err
	}
	return &AccountInfoResponse{
		AccountBank:   manager.AccountBank,
		AccountNo:     manager.AccountNo,
		AccountHolder: manager.AccountHolder,
	}, nil
}

// Create registers the booth's manager. Fails when the booth already has one
// or the username is taken elsewhere. The password is set separately; a
// random placeholder hash is stored so the account cannot be logged into
// until then.
func (ms *ManagerService) Create(boothID uint, p *ManagerAccountPayload, password string) (*ManagerAccountPayload, error) {
	var booth models.Booth
	if err := ms.DB.First(&booth, boothID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}

	var count int64
	if err := ms.DB.Model(&models.ManagerUser{}).
		Where("booth_id = ?", boothID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrManagerAlreadyExists
	}

	if strings.TrimSpace(p.Username) == "" ||
		strings.TrimSpace(p.AccountBank) == "" ||
		strings.TrimSpace(p.AccountNo) == "" ||
		strings.TrimSpace(p.AccountHolder) == "" {
		return nil, ErrRequiredFields
	}

	if err := ms.DB.Model(&models.ManagerUser{}).
		Where("username = ?", p.Username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	if password == "" {
		// Unguessable placeholder until the manager sets a real password.
		password = fmt.Sprintf("!%d!%d", boothID, time.Now().UnixNano())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	manager := models.ManagerUser{
		BoothID:       boothID,
		Username:      p.Username,
		PasswordHash:  string(hash),
		Role:          "MANAGER",
		AccountBank:   p.AccountBank,
		AccountNo:     p.AccountNo,
		AccountHolder: p.AccountHolder,
		CreatedAt:     time.Now(),
	}
	if err := ms.DB.Create(&manager).Error; err != nil {
		return nil, err
	}
	return payloadFrom(&manager), nil
}

// Update patches the booth manager's payload; empty or missing fields keep
// their current value.
func (ms *ManagerService) Update(boothID uint, p *ManagerAccountPayload) (*ManagerAccountPayload, error) {
	manager, err := ms.byBooth(boothID)
	if err != nil {
		return nil, err
	}

	if p.Username != "" && p.Username != manager.Username {
		var count int64
		if err := ms.DB.Model(&models.ManagerUser{}).
			Where("username = ?", p.Username).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
		manager.Username = p.Username
	}
	if p.AccountBank != "" {
		manager.AccountBank = p.AccountBank
	}
	if p.AccountNo != "" {
		manager.AccountNo = p.AccountNo
	}
	if p.AccountHolder != "" {
		manager.AccountHolder = p.AccountHolder
	}

	if err := ms.DB.Save(manager).Error; err != nil {
		return nil, err
	}
	return payloadFrom(manager), nil
}

// Login verifies the manager's credentials and returns a signed token.
func (ms *ManagerService) Login(username, password string) (string, *models.ManagerUser, error) {
	var manager models.ManagerUser
	if err := ms.DB.Where("username = ?", username).First(&manager).Error; err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(manager.ID, strings.ToLower(manager.Role))
	if err != nil {
		return "", nil, err
	}
	return token, &manager, nil
}
