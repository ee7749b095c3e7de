package common

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

type (
	Msg struct {
		Message string `json:"message"`
	}

	ValidationMsg struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
)

func WriteMsg(w http.ResponseWriter, msg string, code int) {
	w.WriteHeader(code)
	WriteRespJSON(w, Msg{msg})
}

// WriteValidationMsg answers 400 with one message per rejected field.
func WriteValidationMsg(w http.ResponseWriter, msg string, fields map[string]string) {
	w.WriteHeader(http.StatusBadRequest)
	WriteRespJSON(w, ValidationMsg{Message: msg, Errors: fields})
}

func ParseReqBody(body io.Reader, ptr interface{}) error {
	err := json.NewDecoder(body).Decode(ptr)
	if err != nil {
		return err
	}
	return nil
}

func WriteRespJSON(w http.ResponseWriter, data interface{}) {
	resp, err := json.Marshal(data)
	if err != nil {
		zap.S().Errorf("common: JSON marshaling failed: %v", err)
		WriteMsg(w, "response failed", http.StatusInternalServerError)
		return
	}

	_, err = w.Write(resp)
	if err != nil {
		zap.S().Errorf("common: failed writing response: %v", err)
	}
}
