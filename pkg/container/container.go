package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"

	"storefront-backend/internal/config"
	"storefront-backend/internal/domains/cart"
	cartHandler "storefront-backend/internal/domains/cart/handler"
	cartService "storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/category"
	categoryHandler "storefront-backend/internal/domains/category/handler"
	categoryRepo "storefront-backend/internal/domains/category/repository"
	categoryService "storefront-backend/internal/domains/category/service"
	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/domains/product"
	productHandler "storefront-backend/internal/domains/product/handler"
	productRepo "storefront-backend/internal/domains/product/repository"
	productService "storefront-backend/internal/domains/product/service"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/infrastructure/notify"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by cmd/api and cmd/worker.
type Container struct {
	// Infrastructure
	Config       *config.Config
	DB           *database.PostgresDB
	Cache        cache.Cache
	AsynqClient  *asynq.Client
	KafkaWriter  *kafka.Writer
	MailNotifier *notify.EmailNotifier
	EmailService email.EmailService
	Notifier     orderService.Notifier

	// Repositories
	CategoryRepo category.Repository
	ProductRepo  product.Repository
	OrderRepo    orderRepo.OrderRepository

	// Services
	CategoryService category.Service
	ProductService  product.Service
	CartService     cartService.ServiceInterface
	OrderService    orderService.ServiceInterface

	// Handlers
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.ProductHandler
	CartHandler     *cartHandler.Handler
	OrderHandler    *orderHandler.OrderHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Config loaded", map[string]interface{}{
		"environment":    cfg.App.Environment,
		"notify_channel": cfg.Notify.Channel,
	})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	// Carts live in Redis, so an unreachable Redis is fatal.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		_ = redisCache.Close()
		c.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: NOTIFICATION CHANNEL
	// ========================================
	c.initNotifier()

	// ========================================
	// STEP 5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("Container initialized", map[string]interface{}{})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// initNotifier picks the order notification channel. The email service is
// always built because the worker sends mail regardless of the api's channel.
func (c *Container) initNotifier() {
	cfg := c.Config

	c.EmailService = email.NewSMTPEmailService(email.SMTPSettings{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	switch cfg.Notify.Channel {
	case config.NotifyChannelSMTP:
		c.MailNotifier = notify.NewEmailNotifier(c.EmailService, cfg.Notify.Timeout)
		c.Notifier = c.MailNotifier
	case config.NotifyChannelKafka:
		c.KafkaWriter = notify.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		c.Notifier = notify.NewKafkaNotifier(c.KafkaWriter)
	default:
		c.AsynqClient = queue.NewClient(cfg.Redis)
		c.Notifier = notify.NewQueueNotifier(c.AsynqClient, cfg.Notify.TaskTimeout)
	}
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.ProductService = productService.NewProductService(
		c.ProductRepo,
		c.CategoryService,
		cfg.Catalog.Locale,
		cfg.Catalog.PageSize,
	)
	c.CartService = cartService.NewCartService(
		cart.NewCacheStorage(c.Cache, cfg.Redis.CartTTL),
		c.ProductService,
	)
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.Notifier, orderService.Config{
		AdminRecipient: cfg.Notify.AdminRecipient,
		NotifyTimeout:  cfg.Notify.Timeout,
	})
}

func (c *Container) initHandlers() {
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.CartHandler = cartHandler.NewHandler(c.CartService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService, c.CartService)
}

// Cleanup releases every connection the container opened.
func (c *Container) Cleanup() {
	if c.MailNotifier != nil {
		c.MailNotifier.Wait()
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.KafkaWriter != nil {
		if err := c.KafkaWriter.Close(); err != nil {
			logger.Error("Failed to close kafka writer", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close redis", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("Container resources released", map[string]interface{}{})
}
