package controller

import (
	"bufio"

	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/pkg/serverutils"
	"praxis-chat-be/internal/service"
	"praxis-chat-be/pkg/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Ready(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Get("", c.Ready)
	h.Post("", c.Ask)
}

func (c *chatController) Ready(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.ReadyResponse{Status: "ready"})
}

// Ask runs one answer turn. Everything up to and including retrieval happens
// before the response commits to streaming, so those failures surface as
// plain HTTP errors; from the first event on, failures travel inside the
// stream.
func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var request dto.ChatRequest
	if err := ctx.BodyParser(&request); err != nil {
		return serverutils.NewValidationError("Invalid request body")
	}

	turn, err := c.chatService.PrepareTurn(ctx.Context(), &request)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set("Connection", "keep-alive")

	// The fasthttp request ctx outlives the handler while the body stream
	// writer runs, and its Done channel fires when the client disconnects.
	reqCtx := ctx.Context()
	reqCtx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		encoder := stream.NewEncoder(w)
		c.chatService.StreamAnswer(reqCtx, turn, func(ev stream.Event) error {
			if err := encoder.Write(ev); err != nil {
				return err
			}
			// Flush per event so partial tokens render immediately.
			return w.Flush()
		})
	}))

	return nil
}
