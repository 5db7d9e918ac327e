package handler

import (
	"strconv"

	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	repo repository.EventRepository
}

func NewEventHandler(repo repository.EventRepository) *EventHandler {
	return &EventHandler{repo: repo}
}

func (h *EventHandler) GetAll(c *fiber.Ctx) error {
	events, err := h.repo.GetAll()
	if err != nil {
		return internalError(c, err, "Failed to fetch events")
	}

	return c.JSON(fiber.Map{
		"message": "Events retrieved",
		"data":    events,
	})
}

func (h *EventHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	event, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	return c.JSON(fiber.Map{
		"message": "Event retrieved",
		"data":    event,
	})
}

type EventRequest struct {
	EventName          string `json:"EventName"`
	EventDate          string `json:"EventDate"`
	EventTime          string `json:"EventTime"`
	EventDescription   string `json:"EventDescription"`
	RecurrenceType     string `json:"RecurrenceType"`
	RecurrenceInterval int    `json:"RecurrenceInterval"`
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.EventName == "" || req.EventDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "EventName and EventDate are required"})
	}

	event := model.Event{
		EventName:          req.EventName,
		EventDate:          req.EventDate,
		EventTime:          req.EventTime,
		EventDescription:   req.EventDescription,
		RecurrenceType:     req.RecurrenceType,
		RecurrenceInterval: req.RecurrenceInterval,
	}
	if event.RecurrenceType == "" {
		event.RecurrenceType = "None"
	}

	if err := h.repo.Create(&event); err != nil {
		return internalError(c, err, "Failed to create event")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Event created",
		"data":    event,
	})
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	event, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.EventName != "" {
		event.EventName = req.EventName
	}
	if req.EventDate != "" {
		event.EventDate = req.EventDate
	}
	if req.EventTime != "" {
		event.EventTime = req.EventTime
	}
	if req.EventDescription != "" {
		event.EventDescription = req.EventDescription
	}
	if req.RecurrenceType != "" {
		event.RecurrenceType = req.RecurrenceType
	}
	if req.RecurrenceInterval != 0 {
		event.RecurrenceInterval = req.RecurrenceInterval
	}

	if err := h.repo.Update(event); err != nil {
		return internalError(c, err, "Failed to update event")
	}

	return c.JSON(fiber.Map{
		"message": "Event updated",
		"data":    event,
	})
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return internalError(c, err, "Failed to delete event")
	}

	return c.JSON(fiber.Map{"message": "Event deleted"})
}
