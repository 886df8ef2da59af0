package dataset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureFiles = map[string]string{
	CustomersFile: `customer_id,city,signup_date
1,Dubai,2023-11-02
2,Sharjah,2023-12-15
`,
	RestaurantsFile: `restaurant_id,restaurant_name,city,zone,cuisine_type,restaurant_tier
10,Shawarma Spot,Dubai,Marina,Lebanese,Premium
11,Curry House,Dubai,Deira,Indian,Budget
`,
	OrdersFile: `order_id,customer_id,restaurant_id,order_datetime,gross_amount,discount_amount,order_status
100,1,10,2024-01-05 12:30:00,120.5,10,Delivered
101,2,11,2024-01-06 19:00:00,80,,Cancelled
102,1.0,10,2024-01-07T08:15:00,99.5,5.5,Delivered
`,
	OrderItemsFile: `order_id,item_name,quantity,unit_price,notes
100,Shawarma,2,30,extra garlic
101,Biryani,1,80,
`,
	DeliveryEventsFile: `order_id,order_placed_time,restaurant_confirmed_time,food_ready_time,rider_picked_up_time,delivered_time,estimated_delivery_time,actual_delivery_time_mins
100,2024-01-05 12:30:00,2024-01-05 12:32:00,2024-01-05 12:45:00,2024-01-05 12:50:00,2024-01-05 13:10:00,2024-01-05 13:05:00,40
101,2024-01-06 19:00:00,,,,,2024-01-06 19:40:00,
`,
	RidersFile: `rider_id,rider_name,city,vehicle_type
500,Omar,Dubai,Motorbike
`,
}

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLocalSourceLoad(t *testing.T) {
	dir := writeFixtures(t, fixtureFiles)

	tables, err := NewLocalSource(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, tables.Customers, 2)
	assert.Len(t, tables.Restaurants, 2)
	assert.Len(t, tables.Orders, 3)
	assert.Len(t, tables.OrderItems, 2)
	assert.Len(t, tables.DeliveryEvents, 2)
	assert.Len(t, tables.Riders, 1)

	first := tables.Orders[0]
	assert.Equal(t, "100", first.ID)
	assert.Equal(t, time.Date(2024, 1, 5, 12, 30, 0, 0, time.UTC), first.OrderDatetime)
	assert.InDelta(t, 120.5, first.GrossAmount, 1e-9)
	assert.Equal(t, models.OrderStatusDelivered, first.Status)

	// blank discount reads as zero, float-looking keys are normalised
	assert.Zero(t, tables.Orders[1].DiscountAmount)
	assert.Equal(t, "1", tables.Orders[2].CustomerID)
	assert.Equal(t, time.Date(2024, 1, 7, 8, 15, 0, 0, time.UTC), tables.Orders[2].OrderDatetime)

	delivered := tables.DeliveryEvents[0]
	require.NotNil(t, delivered.ActualDeliveryTimeMins)
	assert.InDelta(t, 40.0, *delivered.ActualDeliveryTimeMins, 1e-9)

	cancelled := tables.DeliveryEvents[1]
	assert.True(t, cancelled.DeliveredTime.IsZero())
	assert.Nil(t, cancelled.ActualDeliveryTimeMins)
	assert.False(t, cancelled.EstimatedDeliveryTime.IsZero())

	assert.Equal(t, "Premium", tables.Restaurants[0].Tier)
	assert.Equal(t, 2, tables.OrderItems[0].Quantity)
}

func TestLocalSourceMissingFile(t *testing.T) {
	files := map[string]string{}
	for k, v := range fixtureFiles {
		if k != RidersFile {
			files[k] = v
		}
	}
	dir := writeFixtures(t, files)

	_, err := NewLocalSource(dir).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), RidersFile)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parse   func(io.Reader) error
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing column",
			input:   "order_id,customer_id\n1,2\n",
			parse:   func(r io.Reader) error { _, err := ParseOrders(r); return err },
			wantErr: ErrMissingColumn,
			wantMsg: "restaurant_id",
		},
		{
			name:    "bad amount",
			input:   "order_id,customer_id,restaurant_id,order_datetime,gross_amount,discount_amount,order_status\n1,2,3,2024-01-01,abc,0,Delivered\n",
			parse:   func(r io.Reader) error { _, err := ParseOrders(r); return err },
			wantMsg: "line 2 column gross_amount",
		},
		{
			name:    "bad timestamp",
			input:   "customer_id,city,signup_date\n1,Dubai,yesterday\n",
			parse:   func(r io.Reader) error { _, err := ParseCustomers(r); return err },
			wantMsg: "unrecognised timestamp",
		},
		{
			name:    "empty file",
			input:   "",
			parse:   func(r io.Reader) error { _, err := ParseRiders(r); return err },
			wantErr: io.EOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseHeaderCaseAndBOM(t *testing.T) {
	input := "\ufeffCustomer_ID, City ,SIGNUP_DATE\n7,Abu Dhabi,2024-02-01T10:00:00Z\n"
	customers, err := ParseCustomers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "7", customers[0].ID)
	assert.Equal(t, "Abu Dhabi", customers[0].City)
}

type fakeS3 struct {
	objects map[string]string
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *in.Key)
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func TestS3SourceLoad(t *testing.T) {
	client := &fakeS3{objects: map[string]string{}}
	for name, body := range fixtureFiles {
		client.objects["exports/2024/"+name] = body
	}

	tables, err := NewS3SourceWithClient(client, "bites", "exports/2024").Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables.Orders, 3)
	assert.Contains(t, client.keys, "exports/2024/orders.csv")

	_, err = NewS3SourceWithClient(client, "bites", "missing").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://bites/missing/customers.csv")
}

type countingSource struct {
	calls atomic.Int32
}

func (c *countingSource) Load(context.Context) (*Tables, error) {
	c.calls.Add(1)
	return &Tables{Orders: []models.Order{{ID: "1"}}}, nil
}

func TestCachedLoadsOnce(t *testing.T) {
	src := &countingSource{}
	cached := NewCached(src)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = cached.Load(context.Background())
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	first, err := cached.Load(context.Background())
	require.NoError(t, err)
	second, _ := cached.Load(context.Background())
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestNewSourceUnknown(t *testing.T) {
	_, cleanup, err := NewSource(context.Background(), &models.Config{Source: "ftp"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.NotNil(t, cleanup)

	src, cleanup, err := NewSource(context.Background(), &models.Config{Source: models.SourceLocal, DataDir: "data"})
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, "data", src.(*LocalSource).Dir)
}
