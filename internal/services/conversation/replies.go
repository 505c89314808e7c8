package conversation

import (
	"fmt"

	"github.com/KirkDiggler/reservas/internal/models"
)

// Keywords recognised after trimming and lower-casing
const (
	keywordReserve = "reservar"
	keywordYes     = "sim"
	keywordNo      = "não"
)

const (
	replyGreeting = "Olá! Como posso ajudar?\n" +
		"Digite \"reservar\" para fazer uma reserva"

	replyServiceMenu = "O que você deseja reservar?\n" +
		"1 - Chácara\n" +
		"2 - Carro para transporte médico"

	replyInvalidOption = "Opção inválida. Digite:\n" +
		"1 - para Chácara\n" +
		"2 - para Carro"

	replyDateFormat = "Por favor, informe a data no formato DD/MM/YYYY"

	replyYesNo = "Por favor, digite SIM para confirmar ou NÃO para cancelar"

	replyCancelled = "Reserva cancelada.\n" +
		"Digite \"reservar\" para começar novamente."

	replySaveFailed = "Erro ao processar reserva. Por favor, tente novamente."

	// ReplyGenericError is sent whenever a message could not be processed
	ReplyGenericError = "Desculpe, ocorreu um erro. Por favor, tente novamente."
)

func replyAskDate(service models.Service) string {
	return fmt.Sprintf("Por favor, informe a data desejada para %s no formato DD/MM/YYYY", service)
}

func replyConfirm(service models.Service, date string) string {
	return fmt.Sprintf("Confirma a reserva?\n"+
		"Serviço: %s\n"+
		"Data: %s\n\n"+
		"Digite SIM para confirmar ou NÃO para cancelar", service, date)
}

func replyUnavailable(service models.Service) string {
	return fmt.Sprintf("Desculpe, mas %s já está reservado para esta data.\n"+
		"Por favor, escolha outra data no formato DD/MM/YYYY", service)
}

func replySaved(service models.Service, date string) string {
	return fmt.Sprintf("✅ Reserva registrada com sucesso!\n"+
		"Serviço: %s\n"+
		"Data: %s\n\n"+
		"Um diretor irá analisar seu pedido e retornar em breve.\n"+
		"Digite \"reservar\" para fazer uma nova reserva.", service, date)
}
