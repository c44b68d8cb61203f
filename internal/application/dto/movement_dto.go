package dto

import "time"

// MovementRequest entrada ou saída de estoque em um brinde.
// Justificativa é obrigatória apenas na saída.
type MovementRequest struct {
	ItemID        string `json:"brinde_id" validate:"required" label:"Brinde"`
	Type          string `json:"tipo" validate:"required,oneof=entrada saida" label:"Tipo"`
	Quantity      int64  `json:"quantidade" validate:"gt=0" label:"Quantidade"`
	Justification string `json:"justificativa" label:"Justificativa"`
	Notes         string `json:"observacoes" validate:"max=500" label:"Observações"`
	Destination   string `json:"destino" validate:"max=200" label:"Destino"`
	User          string `json:"usuario"`
}

// TransferRequest transferência de quantidade de um brinde para outra filial.
type TransferRequest struct {
	ItemID            string `json:"brinde_id" validate:"required" label:"Brinde"`
	Quantity          int64  `json:"quantidade" validate:"gt=0" label:"Quantidade"`
	DestinationBranch string `json:"filial_destino" validate:"required" label:"Filial de Destino"`
	Justification     string `json:"justificativa" label:"Justificativa"`
	Notes             string `json:"observacoes" validate:"max=500" label:"Observações"`
	User              string `json:"usuario"`
}

// MovementFilter filtros do histórico de movimentações.
type MovementFilter struct {
	ItemID string `json:"brinde_id"`
	Type   string `json:"tipo" validate:"omitempty,oneof=entrada saida transferencia_saida transferencia_entrada" label:"Tipo"`
	Limit  int    `json:"limit" validate:"min=0" label:"Limite"`
}

// MovementResponse saída de uma linha do livro de estoque.
type MovementResponse struct {
	ID                string    `json:"id"`
	TransactionID     string    `json:"transacao_id"`
	ItemID            string    `json:"brinde_id"`
	Type              string    `json:"tipo"`
	Quantity          int64     `json:"quantidade"`
	User              string    `json:"usuario"`
	Justification     string    `json:"justificativa,omitempty"`
	Notes             string    `json:"observacoes,omitempty"`
	Destination       string    `json:"destino,omitempty"`
	OriginBranch      string    `json:"filial_origem,omitempty"`
	DestinationBranch string    `json:"filial_destino,omitempty"`
	CreatedAt         time.Time `json:"data_hora"`
}

// MovementResult movimento aplicado e o brinde com o saldo resultante.
type MovementResult struct {
	Movement MovementResponse `json:"movimentacao"`
	Item     ItemResponse     `json:"brinde"`
}

// TransferResponse resultado de uma transferência concluída.
type TransferResponse struct {
	TransactionID      string           `json:"transacao_id"`
	Out                MovementResponse `json:"saida"`
	In                 MovementResponse `json:"entrada"`
	Source             ItemResponse     `json:"origem"`
	Destination        ItemResponse     `json:"destino"`
	DestinationCreated bool             `json:"destino_criado"`
}
