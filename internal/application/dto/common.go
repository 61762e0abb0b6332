// Package dto define los contratos JSON de la API HTTP.
package dto

// ErrorResponse respuesta de error uniforme.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
