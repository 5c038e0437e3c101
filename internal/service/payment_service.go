package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"time"

	"cassie-be/internal/constant"
	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/pkg/mailer"
	"cassie-be/internal/repository/specification"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/events"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const paymentModule = "PaymentService"

// SnapGateway creates Midtrans Snap transactions. *snap.Client satisfies it.
type SnapGateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// NewSnapGateway returns nil when no server key is configured, which puts
// checkout into stub mode.
func NewSnapGateway(serverKey string, isProduction bool) SnapGateway {
	if serverKey == "" {
		return nil
	}
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}
	var client snap.Client
	client.New(serverKey, env)
	return &client
}

type IPaymentService interface {
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransNotificationRequest) error
}

type paymentService struct {
	uowFactory   unitofwork.RepositoryFactory
	gateway      SnapGateway
	serverKey    string
	idrPerUSD    int64
	frontendURL  string
	publisher    events.Publisher
	emailService mailer.IEmailService
	logger       logger.ILogger
	now          func() time.Time
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gateway SnapGateway,
	serverKey string,
	frontendURL string,
	publisher events.Publisher,
	emailService mailer.IEmailService,
	idrPerUSD int64,
	log logger.ILogger,
) IPaymentService {
	if idrPerUSD <= 0 {
		idrPerUSD = constant.DefaultIDRPerUSD
	}
	return &paymentService{
		uowFactory:   uowFactory,
		gateway:      gateway,
		serverKey:    serverKey,
		idrPerUSD:    idrPerUSD,
		frontendURL:  frontendURL,
		publisher:    publisher,
		emailService: emailService,
		logger:       log,
		now:          time.Now,
	}
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	plan, ok := constant.FindPlan(req.Plan)
	if !ok {
		return nil, dto.NewValidationError("plan", "Unknown plan")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, dto.ErrUnauthorized
	}

	order := &entity.PlanOrder{
		Id:       uuid.New(),
		UserId:   userId,
		PlanId:   plan.Id,
		Amount:   plan.PriceCents(),
		Currency: constant.DefaultCurrency,
		Status:   entity.OrderStatusPending,
	}

	if s.gateway == nil {
		return s.checkoutStub(ctx, user, plan, order)
	}

	if err := uow.PlanOrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	// Snap settles in rupiah; the order keeps the catalog price in USD.
	charge := plan.Price * s.idrPerUSD
	snapResp, midErr := s.gateway.CreateTransaction(&snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.Id.String(),
			GrossAmt: charge,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/onboarding/recipient?plan=%s", s.frontendURL, plan.Id),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id,
				Price: charge,
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	})
	if midErr != nil {
		order.Status = entity.OrderStatusFailed
		if err := uow.PlanOrderRepository().Update(ctx, order); err != nil {
			s.logger.Error(paymentModule, "Failed to mark order failed", map[string]interface{}{"error": err, "order_id": order.Id.String()})
		}
		return nil, fmt.Errorf("midtrans error: %s", midErr.GetMessage())
	}

	order.SnapToken = snapResp.Token
	order.SnapRedirectUrl = snapResp.RedirectURL
	if err := uow.PlanOrderRepository().Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info(paymentModule, "Snap transaction created", map[string]interface{}{"order_id": order.Id.String(), "plan": plan.Id})
	return toCheckoutResponse(order), nil
}

// checkoutStub settles the order at once and selects the plan.
func (s *paymentService) checkoutStub(ctx context.Context, user *entity.User, plan constant.Plan, order *entity.PlanOrder) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	paidAt := s.now().UTC()
	order.Status = entity.OrderStatusPaid
	order.PaidAt = &paidAt
	if err := uow.PlanOrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}
	if _, err := selectPlan(ctx, uow, user.Id, plan.Id, paidAt); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Warn(paymentModule, "Payment gateway not configured, order settled without charge", map[string]interface{}{"order_id": order.Id.String()})
	s.afterPaid(ctx, user, order)
	return toCheckoutResponse(order), nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransNotificationRequest) error {
	if s.serverKey == "" {
		return fmt.Errorf("midtrans server key not configured")
	}
	expected := notificationSignature(req.OrderId, req.StatusCode, req.GrossAmount, s.serverKey)
	if subtle.ConstantTimeCompare([]byte(req.SignatureKey), []byte(expected)) != 1 {
		s.logger.Warn(paymentModule, "Signature mismatch", map[string]interface{}{"order_id": req.OrderId})
		return &dto.AuthError{Message: "invalid signature"}
	}

	orderId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return dto.NewValidationError("order_id", "invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	orders := uow.PlanOrderRepository()
	order, err := orders.FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order %s: %w", req.OrderId, dto.ErrNotFound)
	}

	if err := orders.AppendNotification(ctx, order.Id, map[string]interface{}{
		"transaction_status": req.TransactionStatus,
		"status_code":        req.StatusCode,
		"fraud_status":       req.FraudStatus,
		"transaction_id":     req.TransactionId,
		"payment_type":       req.PaymentType,
		"received_at":        s.now().UTC().Format(time.RFC3339),
	}); err != nil {
		return err
	}

	newStatus, terminal := orderStatusFor(req.TransactionStatus, req.FraudStatus)
	if !terminal || order.Status == newStatus || order.Status == entity.OrderStatusPaid {
		return uow.Commit()
	}

	order.Status = newStatus
	order.MidtransTransactionId = req.TransactionId
	if newStatus == entity.OrderStatusPaid {
		paidAt := s.now().UTC()
		order.PaidAt = &paidAt
		if _, err := selectPlan(ctx, uow, order.UserId, order.PlanId, paidAt); err != nil {
			return err
		}
	}
	if err := orders.Update(ctx, order); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info(paymentModule, "Order settled", map[string]interface{}{"order_id": order.Id.String(), "status": string(order.Status)})

	if order.Status == entity.OrderStatusPaid {
		user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: order.UserId})
		if err != nil || user == nil {
			s.logger.Warn(paymentModule, "Paid order without user", map[string]interface{}{"order_id": order.Id.String()})
			return nil
		}
		s.afterPaid(ctx, user, order)
	}
	return nil
}

func (s *paymentService) afterPaid(ctx context.Context, user *entity.User, order *entity.PlanOrder) {
	planName := order.PlanId
	if plan, ok := constant.FindPlan(order.PlanId); ok {
		planName = plan.Name
	}

	publishEvent(ctx, s.publisher, s.logger, paymentModule, events.New(events.TypePlanPaid, map[string]interface{}{
		"user_id":   user.Id.String(),
		"order_id":  order.Id.String(),
		"plan_id":   order.PlanId,
		"plan_name": planName,
		"amount":    order.Amount,
		"currency":  order.Currency,
	}))
	go func() {
		if err := s.emailService.SendPlanReceipt(user.Email, user.FullName, planName, order.Amount, order.Currency); err != nil {
			s.logger.Error(paymentModule, "Failed to send receipt", map[string]interface{}{"error": err, "order_id": order.Id.String()})
		}
	}()
}

// notificationSignature is SHA512(order_id + status_code + gross_amount + server_key), hex encoded.
func notificationSignature(orderId, statusCode, grossAmount, serverKey string) string {
	return fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+statusCode+grossAmount+serverKey)))
}

// orderStatusFor maps a Midtrans transaction status. terminal is false for
// statuses that leave the order untouched.
func orderStatusFor(transactionStatus, fraudStatus string) (entity.OrderStatus, bool) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return entity.OrderStatusPending, false
		}
		return entity.OrderStatusPaid, true
	case "settlement":
		return entity.OrderStatusPaid, true
	case "deny", "cancel", "expire", "failure":
		return entity.OrderStatusFailed, true
	default:
		return entity.OrderStatusPending, false
	}
}

func toCheckoutResponse(o *entity.PlanOrder) *dto.CheckoutResponse {
	return &dto.CheckoutResponse{
		OrderId:     o.Id,
		PlanId:      o.PlanId,
		Amount:      o.Amount,
		Currency:    o.Currency,
		Status:      string(o.Status),
		SnapToken:   o.SnapToken,
		RedirectUrl: o.SnapRedirectUrl,
	}
}
