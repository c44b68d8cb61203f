package cli

import (
	"errors"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// Mensagens exibidas quando o erro não traz texto próprio para o usuário.
const (
	msgNotFound   = "Registro não encontrado"
	msgConcurrent = "O estoque foi alterado por outra operação. Tente novamente"
	msgDuplicate  = "Registro já cadastrado"
	msgInternal   = "Não foi possível concluir a operação. Consulte o log para detalhes"
)

// Message converte err no texto mostrado ao usuário.
// Erros de validação e de regra de negócio aparecem literalmente; os demais
// recebem uma mensagem genérica.
func Message(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var be *domain.BusinessRuleError
	if errors.As(err, &be) {
		return be.Message
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return msgNotFound
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return msgConcurrent
	case errors.Is(err, domain.ErrDuplicate):
		return msgDuplicate
	default:
		return msgInternal
	}
}

// Report registra erros inesperados no log e devolve a mensagem para o usuário.
func Report(log *logger.Logger, err error) string {
	if !domain.IsValidation(err) && !domain.IsBusinessRule(err) {
		log.Error().Err(err).Msg("comando falhou")
	}
	return Message(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
