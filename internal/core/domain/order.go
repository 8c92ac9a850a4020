package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("invalid delivery address")
	ErrInvalidPayment = errors.New("invalid payment data")
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

type PaymentType string

const (
	PaymentCredit PaymentType = "credit"
	PaymentDebit  PaymentType = "debit"
	PaymentPix    PaymentType = "pix"
	PaymentBoleto PaymentType = "boleto"
)

type (
	Address struct {
		Street       string
		Number       string
		Complement   string
		Neighborhood string
		City         string
		State        string
		ZipCode      string
	}

	// CardData is collected for credit and debit payments only.
	// It is validated for presence and then discarded, never stored.
	CardData struct {
		Number       string
		HolderName   string
		Expiry       string
		CVV          string
		Installments int
	}

	CheckoutRequest struct {
		Address Address
		Payment PaymentType
		Card    CardData
	}

	// Order is the snapshot produced by a finished checkout. Orders are
	// handed back to the caller and not persisted anywhere.
	Order struct {
		ID                string
		Items             []CartItem
		Address           Address
		Payment           PaymentType
		Summary           CartSummary
		Status            OrderStatus
		CreatedAt         time.Time
		EstimatedDelivery time.Time
	}
)
