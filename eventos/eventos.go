// Package eventos publica los cambios de citas hechos desde la consola para
// que otros sistemas (recordatorios, notificaciones) reaccionen.
package eventos

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/lizet96/clinica-dental/models"
)

// Tipos de evento de cita
const (
	CitaAgendada = "cita.agendada"
	CitaEstado   = "cita.estado"
)

// EventoCita es el mensaje publicado. No lleva datos personales del paciente.
type EventoCita struct {
	Tipo       string    `json:"tipo"`
	CitaID     string    `json:"citaId"`
	DoctorID   string    `json:"doctorId"`
	ServicioID string    `json:"servicioId"`
	Fecha      string    `json:"fecha"`
	Hora       string    `json:"hora"`
	Estado     string    `json:"estado"`
	Motivo     string    `json:"motivo,omitempty"`
	Ocurrido   time.Time `json:"ocurrido"`
}

// NuevoEventoCita arma el evento a partir de la cita devuelta por el backend
func NuevoEventoCita(tipo string, cita models.Cita, ocurrido time.Time) EventoCita {
	return EventoCita{
		Tipo:       tipo,
		CitaID:     cita.ID,
		DoctorID:   cita.DoctorID,
		ServicioID: cita.ServicioID,
		Fecha:      cita.Fecha,
		Hora:       cita.Hora,
		Estado:     cita.Estado,
		Motivo:     cita.MotivoCancelacion,
		Ocurrido:   ocurrido.UTC(),
	}
}

// Publisher publica eventos de cita
type Publisher interface {
	Publicar(ctx context.Context, evento EventoCita) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher escribe los eventos en un tópico de Kafka, con el id de la
// cita como clave para conservar el orden por cita.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger zerolog.Logger
}

// NewKafkaPublisher crea el productor para los brokers y tópico indicados
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, topic: topic, logger: logger}
}

// Publicar implementa Publisher
func (p *KafkaPublisher) Publicar(ctx context.Context, evento EventoCita) error {
	valor, err := json.Marshal(evento)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(evento.CitaID),
		Value: valor,
		Headers: []kafka.Header{
			{Key: "tipo", Value: []byte(evento.Tipo)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar %s: %w", evento.Tipo, err)
	}
	p.logger.Debug().
		Str("topic", p.topic).
		Str("tipo", evento.Tipo).
		Str("cita_id", evento.CitaID).
		Msg("evento publicado")
	return nil
}

// Close cierra el productor
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher descarta los eventos cuando Kafka no está configurado
type NopPublisher struct{}

func (NopPublisher) Publicar(context.Context, EventoCita) error { return nil }
func (NopPublisher) Close() error                               { return nil }
