package main

import (
	"fmt"

	"tradingpipeline/internal/model"
)

func keyPosition(pos model.Position[model.Bond]) string {
	return pos.Product.GetProductId()
}

func renderPosition(pos model.Position[model.Bond]) string {
	return fmt.Sprintf("%s,%d", pos.Product.GetProductId(), pos.GetAggregatePosition())
}

func keyPV01(pv01 model.PV01[model.Bond]) string {
	return pv01.Product.GetProductId()
}

func renderPV01(pv01 model.PV01[model.Bond]) string {
	return fmt.Sprintf("%s,%.6f,%d", pv01.Product.GetProductId(), pv01.Value, pv01.Quantity)
}

func keyExecutionOrder(order model.ExecutionOrder[model.Bond]) string {
	return order.OrderID
}

func renderExecutionOrder(order model.ExecutionOrder[model.Bond]) string {
	return fmt.Sprintf("%s,%s,%s,%s,%.6f,%d,%d",
		order.Product.GetProductId(), order.OrderID, order.Side, order.OrderType,
		order.Price, order.VisibleQuantity, order.HiddenQuantity)
}

func keyPriceStream(stream model.PriceStream[model.Bond]) string {
	return stream.Product.GetProductId()
}

func renderPriceStream(stream model.PriceStream[model.Bond]) string {
	return fmt.Sprintf("%s,%.6f,%d,%d,%.6f,%d,%d",
		stream.Product.GetProductId(),
		stream.BidOrder.Price, stream.BidOrder.VisibleQuantity, stream.BidOrder.HiddenQuantity,
		stream.OfferOrder.Price, stream.OfferOrder.VisibleQuantity, stream.OfferOrder.HiddenQuantity)
}

func keyInquiry(inq model.Inquiry[model.Bond]) string {
	return inq.InquiryID
}

func renderInquiry(inq model.Inquiry[model.Bond]) string {
	return fmt.Sprintf("%s,%s,%s,%d,%.6f,%s",
		inq.InquiryID, inq.Product.GetProductId(), inq.Side, inq.Quantity, inq.Price, inq.State)
}
