package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/pkg/validator"
	"github.com/sportsfield-microservice/internal/usecase/dto"
)

// invalidRequest превращает ошибку валидации в INVALID_REQUEST
func invalidRequest(err error) error {
	details := map[string]interface{}{"reason": err.Error()}
	if violations := validator.Violations(err); len(violations) > 0 {
		details = map[string]interface{}{"violations": violations}
	}
	return errors.ErrInvalidRequest.WithDetails(details)
}

// sessionID разбирает и валидирует :sid
func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	var path dto.SessionPath
	if err := c.ParamsParser(&path); err != nil {
		return uuid.Nil, invalidRequest(err)
	}
	if err := validator.Validate(&path); err != nil {
		return uuid.Nil, invalidRequest(err)
	}

	id, err := uuid.Parse(path.SessionID)
	if err != nil {
		return uuid.Nil, invalidRequest(err)
	}
	return id, nil
}
