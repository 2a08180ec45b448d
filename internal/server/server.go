package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	gatewayfile "github.com/black-06/grpc-gateway-file"
	"github.com/gobuffalo/packr"
	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcrecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcvalidator "github.com/grpc-ecosystem/go-grpc-middleware/validator"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/cache"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/compress"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/config"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/jobs"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/metrics"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/migrations"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/queue"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/service"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"golang.org/x/sys/unix"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
)

// Server runs the catalog gRPC service and its REST gateway.
type Server struct {
	cnf *config.Config
}

// NewServer creates a new server
func NewServer(cnf *config.Config) *Server {
	return &Server{cnf: cnf}
}

// Start starts the grpc and http servers and blocks until the process is
// signalled to stop.
func (s *Server) Start() error {
	var err error
	cnf := s.cnf

	grpcPort := ":" + cnf.GrpcPort
	httpPort := ":" + cnf.HTTPPort

	rdb, err := config.GetDb(cnf)
	if err != nil {
		return err
	}
	if err = migrations.Setup(context.Background(), rdb); err != nil {
		return err
	}

	views, closeViews, err := newViewCache(cnf)
	if err != nil {
		return err
	}
	defer closeViews()

	events, err := newPublisher(cnf)
	if err != nil {
		return err
	}
	defer func() {
		if err := events.Close(); err != nil {
			logrus.Errorf("error closing event queue: %v", err)
		}
	}()

	gl, err := net.Listen("tcp", grpcPort)
	if err != nil {
		return err
	}

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	catalogStore := store.NewGormStore(rdb)
	catalog := service.NewCatalogService(catalogStore, views, events, service.Options{
		CacheTTL: cnf.Cache.TTL,
		LockTTL:  cnf.LockTTL,
	})

	grpcServer := NewGrpcServer(catalog)
	mux := NewGatewayMux()

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(UnaryRequestTimeInterceptor()),
	}
	endpoint := "localhost" + grpcPort

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Register the rest gateway
	if err = v1.RegisterCatalogHandlerFromEndpoint(ctx, mux, endpoint, opts); err != nil {
		return err
	}

	restServer := &http.Server{
		Addr:              httpPort,
		Handler:           NewHTTPHandler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var executor *jobs.TaskExecutor
	if cnf.Jobs.Enabled {
		executor = jobs.NewTaskExecutor(nil, []jobs.CronJob{
			jobs.NewScheduledPublishTask(cnf.Jobs.Schedules, catalog),
			jobs.NewLockReaperTask(cnf.Jobs.LockReaper, cnf.LockTTL, catalogStore),
		})
		if err = executor.Run(); err != nil {
			return err
		}
	}

	// make sure to wait for the servers to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	// Start the rest gateway
	go func() {
		defer wg.Done()
		logrus.Info("starting rest gateway on: ", httpPort)
		logrus.Info("click on the following link to view the API documentation: http://localhost", httpPort, "/v1/docs/")
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting rest gateway: %v", err)
			}
		}
		logrus.Infof("rest gateway stopped")
	}()

	// Start the grpc server
	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting grpc server on: ", grpcPort)
		if err := grpcServer.Serve(gl); err != nil {
			logrus.Infof("grpc failed to start: %v", err)
		}
		logrus.Infof("grpc server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	if executor != nil {
		executor.Stop()
	}

	shutdown, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	err = restServer.Shutdown(shutdown)
	if err != nil {
		logrus.Errorf("error stopping rest gateway: %v", err)
	}
	grpcServer.GracefulStop()

	wg.Wait()

	return nil
}

// NewGrpcServer creates a grpc server serving catalog.
func NewGrpcServer(catalog v1.CatalogServer) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcmiddleware.ChainUnaryServer(
			// turn handler panics into Internal errors
			grpcrecovery.UnaryServerInterceptor(grpcrecovery.WithRecoveryHandler(func(p any) error {
				logrus.Errorf("panic in grpc handler: %v", p)
				return status.Errorf(codes.Internal, "internal error")
			})),
			// log the request time
			UnaryGrpcRequestTimeInterceptor(),
			grpcvalidator.UnaryServerInterceptor(),
			// inject the acting user into the context
			module.UnaryServerActorInterceptor(),
		)),
	)

	v1.RegisterCatalogServer(grpcServer, catalog)

	return grpcServer
}

// NewGatewayMux creates the rest gateway mux. The actor header is forwarded
// to the grpc server.
func NewGatewayMux() *runtime.ServeMux {
	return runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.HTTPBodyMarshaler{
			Marshaler: &runtime.JSONPb{
				MarshalOptions: protojson.MarshalOptions{
					EmitUnpopulated: true,
				},
				UnmarshalOptions: protojson.UnmarshalOptions{
					DiscardUnknown: true,
				},
			},
		}),
		gatewayfile.WithHTTPBodyMarshaler(),
		runtime.WithIncomingHeaderMatcher(func(key string) (string, bool) {
			if strings.EqualFold(key, module.ActorHeader) {
				return module.ActorHeader, true
			}
			return runtime.DefaultHeaderMatcher(key)
		}),
	)
}

// NewHTTPHandler serves the gateway with the api docs and the metrics
// endpoint.
func NewHTTPHandler(gateway http.Handler) http.Handler {
	apiMux := http.NewServeMux()
	openapiDocs := packr.NewBox("../../docs/v1")
	docsPath := "/v1/docs/"
	apiMux.Handle(docsPath, http.StripPrefix(docsPath, http.FileServer(openapiDocs)))
	apiMux.Handle("/metrics", metrics.Handler())
	apiMux.Handle("/", gateway)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", module.ActorHeader},
		AllowCredentials: true,
	})

	return c.Handler(apiMux)
}

func newViewCache(cnf *config.Config) (cache.ViewCache, func(), error) {
	if cnf.Redis.Addr == "" {
		logrus.Info("redis not configured, caching published views in memory")
		return cache.NewMemory(), func() {}, nil
	}

	codec, err := compress.ByName(cnf.Cache.Codec)
	if err != nil {
		return nil, nil, err
	}

	redis := cache.NewRedis(cache.RedisOptions{
		Addr:     cnf.Redis.Addr,
		Password: cnf.Redis.Password,
		DB:       cnf.Redis.DB,
	}, codec)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redis.Ping(ctx); err != nil {
		_ = redis.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", cnf.Redis.Addr, err)
	}

	return redis, closer("redis", redis), nil
}

func newPublisher(cnf *config.Config) (queue.Publisher, error) {
	if cnf.Kafka.Brokers == "" {
		logrus.Info("kafka not configured, change events stay in memory")
		return queue.NewBoundedMemory(1000), nil
	}

	return queue.NewKafka(cnf.Kafka.Brokers, cnf.Kafka.Topic)
}

func closer(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logrus.Errorf("error closing %s: %v", name, err)
		}
	}
}
