package service

import (
	"context"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/config"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	LoginWithPin(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]dto.StaffResponse, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	DeactivateStaff(ctx context.Context, id uuid.UUID) error
	ReactivateStaff(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.StaffRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.StaffRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// LoginWithPin unlocks the register for a staff member. PINs are stored
// bcrypt-hashed, so the active roster is scanned and each hash compared —
// acceptable for a staff table that holds a handful of rows.
func (s *authService) LoginWithPin(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var match *model.Staff
	for i := range staff {
		if bcrypt.CompareHashAndPassword([]byte(staff[i].PinHash), []byte(req.Pin)) == nil {
			match = &staff[i]
			break
		}
	}
	if match == nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildLoginResponse(match)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, &InvalidRequestError{Msg: "refresh token inválido o expirado"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &InvalidRequestError{Msg: "claims inválidos"}
	}
	staffIDStr, ok := claims["staff_id"].(string)
	if !ok {
		return nil, &InvalidRequestError{Msg: "token mal formado"}
	}
	id, err := uuid.Parse(staffIDStr)
	if err != nil {
		return nil, &InvalidRequestError{Msg: "token mal formado"}
	}

	staff, err := s.repo.FindByID(ctx, id)
	if err != nil || !staff.Active {
		return nil, &InvalidRequestError{Msg: "empleado no encontrado o inactivo"}
	}

	return s.buildLoginResponse(staff)
}

func (s *authService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), 12)
	if err != nil {
		return nil, err
	}
	staff := &model.Staff{
		Name:    req.Name,
		Role:    req.Role,
		PinHash: string(hash),
		Active:  true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staffToResponse(staff), nil
}

func (s *authService) ListStaff(ctx context.Context, includeInactive bool) ([]dto.StaffResponse, error) {
	var staff []model.Staff
	var err error
	if includeInactive {
		staff, err = s.repo.ListAll(ctx)
	} else {
		staff, err = s.repo.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StaffResponse, len(staff))
	for i := range staff {
		resp[i] = *staffToResponse(&staff[i])
	}
	return resp, nil
}

func (s *authService) UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &InvalidRequestError{Msg: "empleado no encontrado"}
	}
	if req.Name != "" {
		staff.Name = req.Name
	}
	if req.Role != "" {
		staff.Role = req.Role
	}
	if req.Pin != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), 12)
		if err != nil {
			return nil, err
		}
		staff.PinHash = string(hash)
	}
	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staffToResponse(staff), nil
}

func (s *authService) DeactivateStaff(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *authService) ReactivateStaff(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func (s *authService) buildLoginResponse(staff *model.Staff) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(staff, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(staff, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Staff:        *staffToResponse(staff),
	}, nil
}

func (s *authService) generateToken(staff *model.Staff, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"staff_id": staff.ID.String(),
		"name":     staff.Name,
		"role":     staff.Role,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func staffToResponse(staff *model.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:     staff.ID.String(),
		Name:   staff.Name,
		Role:   staff.Role,
		Active: staff.Active,
	}
}
