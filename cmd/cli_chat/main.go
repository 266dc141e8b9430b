package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"persona-study/internal/config"
	"persona-study/internal/llm"
	"persona-study/internal/persona"
)

// Chat de terminal contra el proxy del estudio, con lectura de persona
// despues de cada cambio de prompt. Util para probar prompts antes de
// cargarlos en una condicion.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	chatClient := llm.NewHTTPClient(cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel, zap.NewStdLog(logger))

	var scoreClient persona.ScoreClient
	if cfg.ScoreAPIURL != "" {
		scoreClient = persona.NewHTTPScoreClient(cfg.ScoreAPIURL, cfg.ScoreAPIKey)
	}

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = "You are a helpful assistant."
	}
	printPersona(ctx, scoreClient, systemPrompt)

	var history []llm.Message

	fmt.Println("Escribe un mensaje, /prompt <texto> para cambiar el system prompt, /quit para salir.")
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "/quit" {
			return
		}
		if rest, ok := strings.CutPrefix(line, "/prompt "); ok {
			systemPrompt = strings.TrimSpace(rest)
			history = nil
			fmt.Println("system prompt actualizado, historial reiniciado")
			printPersona(ctx, scoreClient, systemPrompt)
			continue
		}

		history = append(history, llm.Message{Role: "user", Content: line})
		reply, err := chatClient.Chat(ctx, history, systemPrompt, cfg.ChatMaxTokens)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			history = history[:len(history)-1]
			continue
		}
		history = append(history, llm.Message{Role: "assistant", Content: reply})
		fmt.Println(reply)
	}
}

// printPersona muestra los ratings del prompt como barras simples, polo
// ganador primero.
func printPersona(ctx context.Context, client persona.ScoreClient, systemPrompt string) {
	if client == nil {
		return
	}
	ratings, err := client.Score(ctx, systemPrompt)
	if err != nil {
		fmt.Printf("persona score no disponible: %v\n", err)
		return
	}

	dims := make([]string, 0, len(ratings))
	for dim := range ratings {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	fmt.Println("--- persona ---")
	for _, dim := range dims {
		poles := ratings[dim]
		names := make([]string, 0, len(poles))
		for name := range poles {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool { return poles[names[i]] > poles[names[j]] })
		for _, name := range names {
			if poles[name] == 0 {
				continue
			}
			fmt.Printf("%-20s %s %.2f\n", name, bar(poles[name]), poles[name])
		}
	}
	fmt.Println("---------------")
}

func bar(value float64) string {
	const width = 20
	filled := int(value * width)
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
