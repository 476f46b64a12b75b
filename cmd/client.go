package cmd

import (
	"context"
	"strings"

	keelhttp "github.com/foomo/keel/net/http"
	"github.com/foomo/wca/client"
	"github.com/foomo/wca/pkg/auth"
	"github.com/foomo/wca/pkg/journal"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// supportedBlobSchemes lists the URL schemes supported by blob storage
var supportedBlobSchemes = []string{"gs://", "s3://", "azblob://"}

// newClient builds an api client from the connection flags; call the returned closer when done
func newClient(ctx context.Context, v *viper.Viper, l *zap.Logger, opts ...client.Option) (*client.Client, func(), error) {
	httpClient := keelhttp.NewHTTPClient(
		keelhttp.HTTPClientWithTimeout(timeoutFlag(v)),
		keelhttp.HTTPClientWithTelemetry(),
	)

	var (
		endpoint    = endpointOrPod(v)
		tokenSource oauth2.TokenSource
	)
	if accessToken := accessTokenFlag(v); accessToken != "" {
		tokenSource = auth.StaticTokenSource(accessToken)
	} else {
		c, err := resolveCredentials(v, l)
		if err != nil {
			return nil, nil, err
		}
		if tokenSource, err = auth.NewTokenSource(ctx, httpClient, c); err != nil {
			return nil, nil, err
		}
		endpoint = c.Endpoint
	}

	transportOpts := []client.HTTPTransportOption{client.HTTPTransportWithHTTPClient(httpClient)}
	closer := func() {}
	if journalEnabledFlag(v) {
		j, err := newJournal(ctx, v, l)
		if err != nil {
			return nil, nil, err
		}
		transportOpts = append(transportOpts, client.HTTPTransportWithJournal(j))
		closer = func() {
			if err := j.Close(); err != nil {
				l.Warn("failed to close journal", zap.Error(err))
			}
		}
	}

	transport, err := client.NewHTTPTransport(l, endpoint, tokenSource, transportOpts...)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return client.New(l, transport, opts...), closer, nil
}

func endpointOrPod(v *viper.Viper) string {
	if endpoint := endpointFlag(v); endpoint != "" {
		return endpoint
	}
	if pod := podFlag(v); pod > 0 {
		return auth.PodEndpoint(pod)
	}
	return ""
}

// resolveCredentials prefers flags and falls back to the keyring profile
func resolveCredentials(v *viper.Viper, l *zap.Logger) (auth.Credentials, error) {
	c := auth.Credentials{
		Endpoint:     endpointOrPod(v),
		ClientID:     clientIDFlag(v),
		ClientSecret: clientSecretFlag(v),
		RefreshToken: refreshTokenFlag(v),
	}
	if c.ClientID != "" || c.ClientSecret != "" || c.RefreshToken != "" {
		return c, c.Validate()
	}

	store, err := auth.OpenStore(l)
	if err != nil {
		return c, err
	}
	stored, err := store.Load(profileFlag(v))
	if errors.Is(err, auth.ErrNoCredentials) {
		return c, errors.Errorf("no credentials for profile %q, run login or pass --client-id, --client-secret and --refresh-token", profileFlag(v))
	} else if err != nil {
		return c, err
	}
	if c.Endpoint != "" {
		stored.Endpoint = c.Endpoint
	}
	return *stored, stored.Validate()
}

func newJournal(ctx context.Context, v *viper.Viper, l *zap.Logger) (*journal.Journal, error) {
	storage, err := createStorage(ctx, v, l)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create journal storage")
	}
	return journal.New(l,
		journal.JournalWithStorage(storage),
		journal.JournalWithLimit(journalLimitFlag(v)),
	)
}

// createStorage creates a storage backend based on the configuration
func createStorage(ctx context.Context, v *viper.Viper, l *zap.Logger) (journal.Storage, error) {
	storageType := journalStorageTypeFlag(v)
	blobBucket := journalBlobBucketFlag(v)
	blobPrefix := journalBlobPrefixFlag(v)

	if storageType != "blob" && (blobBucket != "" || blobPrefix != "") {
		l.Warn("blob storage flags are set but journal-storage-type is not 'blob'; blob config will be ignored",
			zap.String("storage-type", storageType),
			zap.String("blob-bucket", blobBucket),
			zap.String("blob-prefix", blobPrefix),
		)
	}

	switch storageType {
	case "blob":
		if blobBucket == "" {
			return nil, errors.New("blob bucket URL is required when journal-storage-type is 'blob' (supported schemes: gs://, s3://, azblob://)")
		}
		if !isValidBlobScheme(blobBucket) {
			return nil, errors.Errorf("unsupported blob storage URL scheme in %q; supported schemes: gs://, s3://, azblob://", blobBucket)
		}
		l.Debug("using blob journal", zap.String("bucket", blobBucket), zap.String("prefix", blobPrefix))
		return journal.NewBlobStorage(ctx, blobBucket, blobPrefix)
	case "filesystem", "":
		dir := journalDirFlag(v)
		if dir == "" {
			var err error
			if dir, err = journal.DefaultDir(); err != nil {
				return nil, err
			}
		}
		l.Debug("using filesystem journal", zap.String("dir", dir))
		return journal.NewFilesystemStorage(dir)
	default:
		return nil, errors.Errorf("unknown journal storage type: %s (supported: filesystem, blob)", storageType)
	}
}

func isValidBlobScheme(bucketURL string) bool {
	for _, scheme := range supportedBlobSchemes {
		if strings.HasPrefix(bucketURL, scheme) {
			return true
		}
	}
	return false
}
