package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkarpov/pantrypal/pkg/alerts"
	"github.com/mkarpov/pantrypal/pkg/config"
	"github.com/mkarpov/pantrypal/pkg/freshness"
	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/match"
	"github.com/mkarpov/pantrypal/pkg/messages"
	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/openai"
	"github.com/mkarpov/pantrypal/pkg/pantry"
	"github.com/mkarpov/pantrypal/pkg/recipes"
	"github.com/mkarpov/pantrypal/pkg/shopping"
	"github.com/mkarpov/pantrypal/pkg/state"
	"github.com/mkarpov/pantrypal/pkg/stats"
	"github.com/mkarpov/pantrypal/pkg/storage"
	"github.com/mkarpov/pantrypal/pkg/suggest"
	"github.com/mkarpov/pantrypal/pkg/telegram"
)

func main() {
	log := logger.Global
	log.Info("Starting PantryPal bot...")

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// Start BadgerDB garbage collection
	store.StartGCRoutine(10 * time.Minute)

	// Initialize OpenAI client
	openaiClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)

	// Initialize services
	classifier := freshness.New(cfg.ExpiringSoonDays)
	pantryService := pantry.New(store, classifier)
	recipeService := recipes.New(store, openaiClient)
	suggestService := suggest.New(pantryService, recipeService, cfg.MinMatchPercent)
	shoppingService := shopping.New(store)
	statsService := stats.New(store)
	messageService := messages.New(openaiClient)
	stateManager := state.New()

	// Initialize Telegram bot
	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	// Start the daily expiration digest
	alertService := alerts.New(store, bot, pantryService, statsService, messageService, cfg.AlertHour)
	alertService.Start()
	defer alertService.Stop()

	// Setup command handlers
	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, messageService.GenerateWelcomeMessage())
		},
		"pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			reports, err := pantryService.Reports(chatID, time.Now())
			if err != nil {
				log.Error("Failed to read pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("read your pantry"))
				return
			}

			if len(reports) == 0 {
				bot.SendMessage(chatID, messageService.GenerateEmptyPantryMessage())
				return
			}

			bot.SendMessage(chatID, messageService.FormatPantry(reports))
		},
		"add": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			stateManager.SetState(chatID, state.StateAddingItems)
			bot.SendMessage(chatID, "📝 Send me what you bought, one message or several. Include expiration dates when you know them, e.g. \"2l milk exp 2025-04-01, a dozen eggs\".")
		},
		"remove": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				bot.SendMessage(chatID, "Usage: /remove <item name>")
				return
			}

			if err := pantryService.RemoveItem(chatID, name); err != nil {
				log.Error("Failed to remove item: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("remove the item"))
				return
			}

			bot.SendMessage(chatID, fmt.Sprintf("🗑 Removed %s from your pantry.", name))
		},
		"expiring": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			expiring, err := pantryService.ExpiringItems(chatID, time.Now())
			if err != nil {
				log.Error("Failed to classify pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("check expiration dates"))
				return
			}

			if len(expiring) == 0 {
				bot.SendMessage(chatID, "✅ Nothing is expired or expiring soon. Your pantry looks good!")
				return
			}

			bot.SendMessage(chatID, messageService.FormatExpirationDigest(expiring))
		},
		"suggest": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			results, err := suggestService.Suggestions(chatID)
			if err != nil {
				log.Error("Failed to compute suggestions: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("suggest recipes"))
				return
			}

			if len(results) == 0 {
				bot.SendMessage(chatID, messageService.FormatSuggestions(results))
				return
			}

			// One button row per suggestion: pull its missing ingredients
			// into the shopping list, or mark it cooked
			rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(results))
			for _, result := range results {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(
						fmt.Sprintf("🛒 Shop for %s", result.Recipe.Name),
						"shop:"+result.Recipe.ID,
					),
					tgbotapi.NewInlineKeyboardButtonData(
						fmt.Sprintf("👨‍🍳 Cooked %s", result.Recipe.Name),
						"cooked:"+result.Recipe.ID,
					),
				))
			}

			bot.SendMessageWithKeyboard(chatID, messageService.FormatSuggestions(results),
				tgbotapi.NewInlineKeyboardMarkup(rows...))
		},
		"recipes": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			catalog, err := recipeService.ListRecipes()
			if err != nil {
				log.Error("Failed to list recipes: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("list recipes"))
				return
			}

			if len(catalog) == 0 {
				bot.SendMessage(chatID, "📖 The recipe catalog is empty. Add recipes with /addrecipe <dish name>.")
				return
			}

			var b strings.Builder
			b.WriteString("📖 Recipe catalog:\n\n")
			for i, recipe := range catalog {
				b.WriteString(fmt.Sprintf("%d. %s", i+1, recipe.Name))
				if recipe.Cuisine != "" {
					b.WriteString(fmt.Sprintf(" (%s)", recipe.Cuisine))
				}
				b.WriteString("\n")
			}
			bot.SendMessage(chatID, b.String())
		},
		"addrecipe": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				bot.SendMessage(chatID, "Usage: /addrecipe <dish name>")
				return
			}

			processingMsg, _ := bot.SendMessage(chatID, fmt.Sprintf("🧐 Looking up %s... This might take a moment.", name))

			recipe, err := recipeService.ImportRecipe(name, "", fmt.Sprintf("%d", message.From.ID))
			if err != nil {
				log.Error("Failed to import recipe: %v", err)
				bot.EditMessage(chatID, processingMsg.MessageID, messageService.GenerateErrorMessage("look up the recipe"))
				return
			}

			bot.EditMessage(chatID, processingMsg.MessageID,
				fmt.Sprintf("✅ Added %s with %d ingredients to the catalog. Run /suggest to see how it matches your pantry.",
					recipe.Name, len(recipe.Ingredients)))
		},
		"shopping": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			items, err := shoppingService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to read shopping list: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("read your shopping list"))
				return
			}

			bot.SendMessage(chatID, messageService.FormatShoppingList(items))
		},
		"clear_shopping": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			if err := shoppingService.ClearList(chatID); err != nil {
				log.Error("Failed to clear shopping list: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("clear your shopping list"))
				return
			}
			if err := statsService.RecordListCleared(chatID); err != nil {
				log.Error("Failed to record list cleared: %v", err)
			}

			bot.SendMessage(chatID, "🧹 Shopping list cleared.")
		},
		"reset_pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			if err := pantryService.ResetPantry(chatID); err != nil {
				log.Error("Failed to reset pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("reset your pantry"))
				return
			}

			stateManager.SetState(chatID, state.StateAddingItems)
			bot.SendMessage(chatID, "🧹 Pantry reset! Now send me a list of what you have, and I'll stock it up.")
		},
		"stats": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			chatStats, err := statsService.GetStatistics(chatID)
			if err != nil {
				log.Error("Failed to get statistics: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("read your statistics"))
				return
			}

			bot.SendMessage(chatID, messageService.FormatStatistics(chatStats))
		},
	}

	// Setup callback handlers
	callbackHandlers := map[string]telegram.CallbackHandler{
		"shop:": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			recipeID := strings.TrimPrefix(callback.Data, "shop:")

			recipe, err := recipeService.GetRecipe(recipeID)
			if err != nil {
				log.Error("Failed to get recipe %s: %v", recipeID, err)
				bot.AnswerCallbackQuery(callback.ID, "Sorry, I couldn't find that recipe anymore.")
				return
			}

			// Recompute the match against the current pantry: the pantry may
			// have changed since the suggestion was rendered
			names, err := pantryService.ItemNames(chatID)
			if err != nil {
				log.Error("Failed to read pantry: %v", err)
				bot.AnswerCallbackQuery(callback.ID, "Sorry, something went wrong.")
				return
			}

			result := match.Match(match.NormalizeAll(names), *recipe)
			added, err := shoppingService.AddMissing(chatID, result)
			if err != nil {
				log.Error("Failed to update shopping list: %v", err)
				bot.AnswerCallbackQuery(callback.ID, "Sorry, something went wrong.")
				return
			}

			bot.AnswerCallbackQuery(callback.ID, fmt.Sprintf("Added %d items to your shopping list.", added))
			if added > 0 {
				bot.SendMessage(chatID, fmt.Sprintf("🛒 Added %d missing ingredients for %s to your shopping list. See them with /shopping.", added, recipe.Name))
			}
		},
		"cooked:": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			recipeID := strings.TrimPrefix(callback.Data, "cooked:")

			recipe, err := recipeService.GetRecipe(recipeID)
			if err != nil {
				log.Error("Failed to get recipe %s: %v", recipeID, err)
				bot.AnswerCallbackQuery(callback.ID, "Sorry, I couldn't find that recipe anymore.")
				return
			}

			if err := statsService.RecordRecipeCooked(chatID); err != nil {
				log.Error("Failed to record cooked recipe: %v", err)
			}

			bot.AnswerCallbackQuery(callback.ID, "Enjoy your meal!")
			bot.SendMessage(chatID, fmt.Sprintf("👨‍🍳 Nice, you cooked %s! Don't forget to /remove the ingredients you used up.", recipe.Name))
		},
		"done_adding": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID

			stateManager.ClearState(chatID)
			bot.AnswerCallbackQuery(callback.ID, "Thanks! Your pantry is now updated.")

			editMsg := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID,
				"✅ Pantry update complete! Use /pantry to see your items or /suggest to get recipe ideas.")
			editMsg.ReplyMarkup = &tgbotapi.InlineKeyboardMarkup{}
			bot.Send(editMsg)
		},
		"add_more": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID

			bot.AnswerCallbackQuery(callback.ID, "Please send more items!")

			editMsg := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID,
				"Please send more items. I'll add them to your pantry.")
			editMsg.ReplyMarkup = &tgbotapi.InlineKeyboardMarkup{}
			bot.Send(editMsg)
		},
	}

	// Setup default handler for plain text messages
	defaultHandler := func(update tgbotapi.Update) {
		if update.Message == nil || update.Message.Text == "" || update.Message.IsCommand() {
			return
		}

		chatID := update.Message.Chat.ID
		text := update.Message.Text

		if stateManager.GetState(chatID) == state.StateAddingItems {
			items, err := openaiClient.ParseItemsFromText(text)
			if err != nil {
				log.Error("Failed to parse items: %v", err)
				bot.SendMessage(chatID, "😢 Sorry, I couldn't understand that list. Please try again with a clearer one.")
				return
			}

			if len(items) == 0 {
				bot.SendMessage(chatID, "I couldn't find any items in your message. Please try again with a list of items.")
				return
			}

			if err := pantryService.AddItems(chatID, items); err != nil {
				log.Error("Failed to add items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("update your pantry"))
				return
			}
			if err := statsService.RecordItemsAdded(chatID, len(items)); err != nil {
				log.Error("Failed to record items added: %v", err)
			}

			names := make([]string, len(items))
			for i, item := range items {
				names[i] = item.Name
			}
			bot.SendMessage(chatID, fmt.Sprintf("✅ Added %d items to your pantry: %s", len(items), strings.Join(names, ", ")))

			keyboard := tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("Done adding items", "done_adding"),
					tgbotapi.NewInlineKeyboardButtonData("Add more", "add_more"),
				),
			)

			msg := tgbotapi.NewMessage(chatID, "Would you like to add more items or are you done?")
			msg.ReplyMarkup = keyboard
			bot.Send(msg)
			return
		}

		// Quick add: a short single-word message is treated as one item
		if !strings.Contains(text, " ") && len(text) < 30 {
			err := pantryService.AddItem(chatID, models.InventoryItem{Name: text})
			if err != nil {
				log.Error("Failed to add item: %v", err)
				bot.SendMessage(chatID, fmt.Sprintf("😢 Sorry, I couldn't add %s to your pantry.", text))
				return
			}
			if err := statsService.RecordItemsAdded(chatID, 1); err != nil {
				log.Error("Failed to record item added: %v", err)
			}

			bot.SendMessage(chatID, fmt.Sprintf("✅ Added %s to your pantry!", text))
		}
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down...")
		alertService.Stop()
		store.Close()
		os.Exit(0)
	}()

	// Start the bot
	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(commandHandlers, callbackHandlers, defaultHandler); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
}
