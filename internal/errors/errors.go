// Package apperror defines the typed failure taxonomy shared by the
// repository, service and handler layers. Handlers translate these into HTTP
// status codes with errors.As; business-rule failures carry enough detail
// (which variant, which constraint) to render an actionable message.
package apperror

import "fmt"

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Campo  string
	Motivo string
}

func NewValidation(campo, motivo string) *ValidationError {
	return &ValidationError{Campo: campo, Motivo: motivo}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Campo, e.Motivo)
}

// NaoEncontradoError reports an unknown variant, movement or user.
type NaoEncontradoError struct {
	Recurso string
	ID      any
}

func NewNaoEncontrado(recurso string, id any) *NaoEncontradoError {
	return &NaoEncontradoError{Recurso: recurso, ID: id}
}

func (e *NaoEncontradoError) Error() string {
	return fmt.Sprintf("%s %v não encontrada", e.Recurso, e.ID)
}

// EstoqueInsuficienteError: the requested quantity exceeds the stock
// available at validation time (reconciled stock minus pending reservations).
type EstoqueInsuficienteError struct {
	BrindeID   uint
	Solicitado int
	Disponivel int
}

func (e *EstoqueInsuficienteError) Error() string {
	return fmt.Sprintf("estoque insuficiente para variante %d: solicitado %d, disponível %d",
		e.BrindeID, e.Solicitado, e.Disponivel)
}

// CustoInvalidoError: a variant with non-positive unit cost cannot be redeemed.
type CustoInvalidoError struct {
	BrindeID uint
	Custo    int
}

func (e *CustoInvalidoError) Error() string {
	return fmt.Sprintf("custo em pontos inválido para variante %d: %d", e.BrindeID, e.Custo)
}

// TransicaoInvalidaError: attempt to re-transition a terminal movement.
type TransicaoInvalidaError struct {
	MovID  uint64
	Status string
}

func (e *TransicaoInvalidaError) Error() string {
	return fmt.Sprintf("movimentação %d já está em estado terminal (%s)", e.MovID, e.Status)
}

// PersistenciaError wraps storage failures. Treated as an internal fault —
// handlers never expose the wrapped error to clients.
type PersistenciaError struct {
	Op  string
	Err error
}

func NewPersistencia(op string, err error) *PersistenciaError {
	return &PersistenciaError{Op: op, Err: err}
}

func (e *PersistenciaError) Error() string {
	return fmt.Sprintf("persistência: %s: %v", e.Op, e.Err)
}

func (e *PersistenciaError) Unwrap() error { return e.Err }
