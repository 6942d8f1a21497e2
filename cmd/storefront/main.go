// Storefront 主程序
// 功能：商品目录、购物车、心愿单、结账与下单通知
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartmessaging "github.com/solestride/storefront/internal/cart/infrastructure/messaging"
	cartredis "github.com/solestride/storefront/internal/cart/infrastructure/persistence/redis"
	carthttp "github.com/solestride/storefront/internal/cart/interfaces/http"
	catalogapp "github.com/solestride/storefront/internal/catalog/application"
	catalogdomain "github.com/solestride/storefront/internal/catalog/domain"
	catalogmessaging "github.com/solestride/storefront/internal/catalog/infrastructure/messaging"
	catalogmysql "github.com/solestride/storefront/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/solestride/storefront/internal/catalog/interfaces/http"
	checkoutapp "github.com/solestride/storefront/internal/checkout/application"
	checkoutdomain "github.com/solestride/storefront/internal/checkout/domain"
	checkoutmessaging "github.com/solestride/storefront/internal/checkout/infrastructure/messaging"
	checkoutmysql "github.com/solestride/storefront/internal/checkout/infrastructure/persistence/mysql"
	checkouthttp "github.com/solestride/storefront/internal/checkout/interfaces/http"
	notificationapp "github.com/solestride/storefront/internal/notification/application"
	notificationdomain "github.com/solestride/storefront/internal/notification/domain"
	notificationmysql "github.com/solestride/storefront/internal/notification/infrastructure/persistence/mysql"
	"github.com/solestride/storefront/internal/notification/infrastructure/sender"
	notificationconsumer "github.com/solestride/storefront/internal/notification/interfaces/consumer"
	notificationhttp "github.com/solestride/storefront/internal/notification/interfaces/http"
	"github.com/solestride/storefront/internal/session"
	wishlistdomain "github.com/solestride/storefront/internal/wishlist/domain"
	wishlistmessaging "github.com/solestride/storefront/internal/wishlist/infrastructure/messaging"
	wishlistmysql "github.com/solestride/storefront/internal/wishlist/infrastructure/persistence/mysql"
	wishlisthttp "github.com/solestride/storefront/internal/wishlist/interfaces/http"
	"github.com/wyfcoding/pkg/cache"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/middleware"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthv1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

var (
	configPath   = flag.String("config", "configs/storefront/config.toml", "config file path")
	orderWebhook = flag.String("order-webhook", "https://hooks.example.com/orders", "order notification webhook url")
)

func main() {
	flag.Parse()

	// 1. 配置
	var cfg config.Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 日志
	logCfg := &logging.Config{Service: cfg.Server.Name, Level: cfg.Log.Level}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. 指标
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)

	// 4. 数据库
	db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Environment == "dev" {
		if err := db.RawDB().AutoMigrate(
			&catalogdomain.Product{},
			&catalogdomain.ProductImage{},
			&wishlistdomain.Entry{},
			&checkoutdomain.OrderLine{},
			&notificationdomain.Notification{},
			&outbox.Message{},
		); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. Kafka & Outbox
	kafkaProducer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, metricsImpl)
	outboxMgr := outbox.NewManager(db.RawDB(), logger.Logger)
	pusher := func(ctx context.Context, topic, key string, payload []byte) error {
		return kafkaProducer.PublishToTopic(ctx, topic, []byte(key), payload)
	}
	outboxProcessor := outbox.NewProcessor(outboxMgr, pusher, 100, 2*time.Second)

	// 6. Redis
	redisCache, err := cache.NewRedisCache(&cfg.Data.Redis, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	// 7. 仓储
	productRepo := catalogmysql.NewProductRepository(db.RawDB())
	wishlistRepo := wishlistmysql.NewWishlistRepository(db.RawDB())
	orderRepo := checkoutmysql.NewOrderRepository(db.RawDB())
	notificationRepo := notificationmysql.NewNotificationRepository(db.RawDB())
	cartStore := cartredis.NewCartSnapshotStore(redisCache.GetClient())

	cartPublisher := cartmessaging.NewOutboxPublisher(outboxMgr)
	catalogPublisher := catalogmessaging.NewOutboxPublisher(outboxMgr)
	wishlistPublisher := wishlistmessaging.NewOutboxPublisher(outboxMgr)
	checkoutPublisher := checkoutmessaging.NewOutboxPublisher(outboxMgr)

	// 8. 应用服务
	catalogSvc := catalogapp.NewCatalogApplicationService(productRepo, catalogPublisher)
	checkoutSvc := checkoutapp.NewCheckoutService(orderRepo, checkoutPublisher, db.RawDB())
	notificationSvc := notificationapp.NewNotificationService(notificationRepo, sender.NewWebhookSender(), *orderWebhook)
	sessions := session.NewRegistry(cartStore, cartPublisher, wishlistRepo, wishlistPublisher)

	// 9. 下单事件消费
	consumerCfg := cfg.MessageQueue.Kafka
	consumerCfg.Topic = notificationconsumer.TopicOrderPlaced
	if consumerCfg.GroupID == "" {
		consumerCfg.GroupID = "storefront-notification-group"
	}
	orderPlacedHandler := notificationconsumer.NewOrderPlacedHandler(notificationSvc, logger.Logger)
	consumer := kafka.NewConsumer(&consumerCfg, logger, metricsImpl)
	consumer.Start(context.Background(), 3, orderPlacedHandler.Handle)

	// 10. 接口层
	grpcSrv := grpc.NewServer()
	healthv1.RegisterHealthServer(grpcSrv, health.NewServer())
	reflection.Register(grpcSrv)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.HTTPMetricsMiddleware(metricsImpl))
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metricsImpl.Handler()))
	}

	api := r.Group("")
	cataloghttp.NewCatalogHandler(catalogSvc).RegisterRoutes(api)
	carthttp.NewCartHandler(sessions, catalogSvc).RegisterRoutes(api)
	wishlisthttp.NewWishlistHandler(sessions, catalogSvc).RegisterRoutes(api)
	checkouthttp.NewCheckoutHandler(sessions, checkoutSvc).RegisterRoutes(api)
	notificationhttp.NewNotificationHandler(notificationSvc).RegisterRoutes(api)

	// 11. 启动
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		outboxProcessor.Start()
		<-ctx.Done()
		outboxProcessor.Stop()
		return nil
	})

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.GRPC.Port)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		slog.Info("gRPC server starting", "addr", addr)
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
		server := &http.Server{Addr: addr, Handler: r}
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down servers...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		consumer.Close()
		redisCache.Close()
		grpcSrv.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
