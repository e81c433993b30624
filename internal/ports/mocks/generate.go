//go:generate mockgen -source=../commerce_client.go  -destination=./mock_commerce_client.go  -package=mocks
//go:generate mockgen -source=../bronze_sink.go      -destination=./mock_bronze_sink.go      -package=mocks
//go:generate mockgen -source=../status_store.go     -destination=./mock_status_store.go     -package=mocks
//go:generate mockgen -source=../tenant_source.go    -destination=./mock_tenant_source.go    -package=mocks
//go:generate mockgen -source=../tenant_locker.go    -destination=./mock_tenant_locker.go    -package=mocks
//go:generate mockgen -source=../sync_service.go     -destination=./mock_sync_service.go     -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks

package mocks
