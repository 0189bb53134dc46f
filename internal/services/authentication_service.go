package services

import (
	"log"
	"time"

	"weddingChat/configs"
	"weddingChat/internal/errs"
	"weddingChat/internal/models"
	"weddingChat/internal/repositories"
	"weddingChat/internal/utils"
	"weddingChat/internal/validators"
)

type AuthenticationService struct {
	authRepo *repositories.AuthenticationRepository
	config   *configs.Config
}

func NewAuthenticationService(
	authRepo *repositories.AuthenticationRepository,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo: authRepo,
		config:   config,
	}
}

func (as *AuthenticationService) Register(user *models.User) (*models.User, []error) {
	var errors []error
	if as.CheckIfUserExists(user.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}
	validationErrs := validators.ValidateUser(user)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	password, err := utils.HashPassword(user.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	user.PasswordHash = password
	return as.authRepo.CreateUser(user)
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	user, loginErrs := as.authRepo.Login(loginData)
	if loginErrs != nil {
		errors = append(errors, loginErrs...)
		return nil, errors
	}

	jwtExpiration := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second).Unix()
	token, jwtErr := utils.CreateJwtToken(
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		utils.GetJwtKey(),
		time.Unix(jwtExpiration, 0),
	)
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  *user,
		Token: token,
	}, nil
}

func (as *AuthenticationService) CheckIfUserExists(email string) bool {
	return as.authRepo.CheckIfUserExists(email) != nil
}

func (as *AuthenticationService) GetSingleUser(userID uint) (*models.UserResponse, []error) {
	var errors []error
	user, err := as.authRepo.GetUserById(userID)
	if err != nil {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	return user.ToUserResponse(), nil
}

func (as *AuthenticationService) GetAllUsersWithPagination(page, size int) (*models.GetUsersResponse, []error) {
	var errors []error
	if page < 0 || size < 0 {
		log.Println("Page or size < 0")
		errors = append(errors, errs.ErrInvalidPageOrSize)
		return nil, errors
	}
	offset := (page - 1) * size
	return as.authRepo.GetAllUsersWithPagination(page, size, offset)
}

func (as *AuthenticationService) UpdateUserProfilePhoto(userID uint, url string) []error {
	return as.authRepo.UpdateUserProfilePhoto(userID, url)
}

func (as *AuthenticationService) SetOnlineStatus(userID uint, isOnline bool) {
	if err := as.authRepo.SetOnlineStatus(userID, isOnline); err != nil {
		log.Printf("Error updating online status for user %v: %v", userID, err)
	}
}
