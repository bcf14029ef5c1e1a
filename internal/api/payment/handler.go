package payment

import (
	"encoding/json"
	"net/http"

	"serenity/internal/pkg/logger"
)

// PixInstructions são as instruções estáticas de pagamento manual via PIX.
// Não há processamento de pagamento: a chave é texto fixo que o cliente copia
// para o aplicativo do banco.
type PixInstructions struct {
	Plan         string `json:"plan"`
	Description  string `json:"description"`
	PriceBRL     string `json:"price_brl"`
	KeyType      string `json:"key_type"`
	Key          string `json:"key"`
	KeyFormatted string `json:"key_formatted"`
}

// Handler agrupa os métodos de Handler da página de pagamento.
type Handler struct {
	Logger logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(log logger.Logger) *Handler {
	return &Handler{Logger: log}
}

// PixHandler lida com a requisição GET /v1/payment/pix (rota pública).
// @Summary Instruções de pagamento via PIX
// @Description Retorna as instruções estáticas do plano Acesso Premium: chave PIX (CPF) para transferência manual. Nenhum pagamento é processado pelo serviço.
// @Tags payment
// @Produce json
// @Success 200 {object} PixInstructions "Instruções de pagamento"
// @Router /v1/payment/pix [get]
func (h *Handler) PixHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	instructions := PixInstructions{
		Plan:         "Acesso Premium",
		Description:  "Imobiliária Serenity - Acesso completo ao sistema",
		PriceBRL:     "R$ 2.500,00",
		KeyType:      "CPF",
		Key:          "12483465994",
		KeyFormatted: "124.834.659-94",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(instructions); err != nil {
		h.Logger.Error("Falha ao codificar instruções de pagamento.", err)
	}
}
