package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"therapeutic-assistant/backend/pkg/jwt"
	"therapeutic-assistant/backend/shared/redis"
	"therapeutic-assistant/backend/user/models"
	"therapeutic-assistant/backend/user/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

const userCacheTTL = 10 * time.Minute

// UserService handles accounts and authentication. Passwords are stored
// as bcrypt hashes; plaintext is never compared or persisted.
type UserService struct {
	repo       repository.UserRepository
	cache      *redis.Client
	jwtService *jwt.Service
}

func NewUserService(repo repository.UserRepository, cache *redis.Client, jwtService *jwt.Service) *UserService {
	return &UserService{repo: repo, cache: cache, jwtService: jwtService}
}

// Register creates a new account and returns it with a signed token
func (s *UserService) Register(req *models.RegisterRequest) (*models.User, string, error) {
	if _, err := s.repo.GetByUsername(req.Username); err == nil {
		return nil, "", ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password, // hashed by the BeforeCreate hook
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// EnsureAssistantUser creates the built-in assistant account if it does
// not exist yet. Assistant replies are stored against this user, so it
// must be present before the first chat turn.
func (s *UserService) EnsureAssistantUser(id uint, username string) error {
	if _, err := s.repo.GetByID(id); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// A random password keeps the account unusable for interactive login
	assistant := &models.User{
		ID:       id,
		Username: username,
		Password: uuid.NewString(),
	}
	return s.repo.Create(assistant)
}

// Login authenticates a user and returns a signed token
func (s *UserService) Login(req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !models.CheckPasswordHash(req.Password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username, read-through cached
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user:username:%s", username)
	if s.cache != nil {
		if cached, err := s.cache.Get(cacheKey); err == nil && cached != "" {
			var user models.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
		}
	}

	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(user); err == nil {
			_ = s.cache.Set(cacheKey, data, userCacheTTL)
		}
	}
	return user, nil
}

// UpdateUser changes the username and/or password of an existing user
func (s *UserService) UpdateUser(id uint, username, password string) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	oldUsername := user.Username
	if username != "" {
		user.Username = username
	}
	if password != "" {
		hashed, err := models.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.repo.Save(user); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Del(fmt.Sprintf("user:username:%s", oldUsername))
	}
	return user, nil
}
