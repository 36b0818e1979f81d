package handler

import (
	"errors"
	"net/http"

	"simplifique/internal/apierror"
	apperror "simplifique/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondErro translates the typed failure taxonomy into HTTP status codes.
// Storage failures are logged with full detail but answered with an opaque
// 500 — the wrapped driver error never reaches the client.
func respondErro(c *gin.Context, err error) {
	var (
		validacao    *apperror.ValidationError
		naoEnc       *apperror.NaoEncontradoError
		semEstoque   *apperror.EstoqueInsuficienteError
		custoInval   *apperror.CustoInvalidoError
		transicao    *apperror.TransicaoInvalidaError
		persistencia *apperror.PersistenciaError
	)

	switch {
	case errors.As(err, &validacao):
		c.JSON(http.StatusBadRequest, apierror.New(validacao.Error()))
	case errors.As(err, &naoEnc):
		c.JSON(http.StatusNotFound, apierror.New(naoEnc.Error()))
	case errors.As(err, &semEstoque):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(semEstoque.Error()))
	case errors.As(err, &custoInval):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(custoInval.Error()))
	case errors.As(err, &transicao):
		c.JSON(http.StatusConflict, apierror.New(transicao.Error()))
	case errors.As(err, &persistencia):
		log.Error().Err(err).Str("op", persistencia.Op).Msg("falha de persistência")
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
