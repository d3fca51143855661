package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// EnviarAlertaMatriculaDuplicada avisa a equipe quando um aluno aparece com
// mais de uma matrícula ativa na mesma escola. Fire-and-forget: falha de
// entrega é logada e nunca propaga ao chamador.
func EnviarAlertaMatriculaDuplicada(escolaID, alunoID uint, qtd int) {
	url := os.Getenv("WEBHOOK_ALERTA_URL")
	if url == "" {
		return
	}

	payload := map[string]interface{}{
		"mensagem": "Alerta: aluno com mais de uma matrícula ativa",
		"escolaId": escolaID,
		"alunoId":  alunoID,
		"qtd":      qtd,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}
